package explorer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrUnknownMode  = errors.New("unknown mode")
	ErrNoImages     = errors.New("no images available")
)

// State is everything the explorer view depends on.
type State struct {
	Mode    simdata.Family `json:"mode"`
	ImageID string         `json:"image_id"`
	Model   string         `json:"model"`
	Prompt  int            `json:"prompt"`
}

// Event is a user interaction handled by Reduce.
type Event interface {
	event()
}

type (
	NextExample struct{}
	PrevExample struct{}
	NextPrompt  struct{}
	PrevPrompt  struct{}
	SetMode     struct{ Mode simdata.Family }
	SelectModel struct{ Model string }
)

func (NextExample) event() {}
func (PrevExample) event() {}
func (NextPrompt) event()  {}
func (PrevPrompt) event()  {}
func (SetMode) event()     {}
func (SelectModel) event() {}

// Env is the read-only data a reducer consults.
type Env struct {
	Datasets        map[simdata.Family]*simdata.Dataset
	Master          *MasterList
	DefaultVLMModel string
	PromptCount     int
}

// Reduce applies ev to s and returns the next state. s is not modified.
func Reduce(env Env, s State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case NextExample:
		s.ImageID = env.Master.Next(s.ImageID)
	case PrevExample:
		s.ImageID = env.Master.Prev(s.ImageID)
	case NextPrompt:
		if s.Mode == simdata.FamilyLVLM && env.PromptCount > 0 {
			s.Prompt = (s.Prompt + 1) % env.PromptCount
		}
	case PrevPrompt:
		if s.Mode == simdata.FamilyLVLM && env.PromptCount > 0 {
			s.Prompt = (s.Prompt - 1 + env.PromptCount) % env.PromptCount
		}
	case SetMode:
		ds, ok := env.Datasets[ev.Mode]
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownMode, ev.Mode)
		}
		s.Mode = ev.Mode
		s.Model = env.defaultModel(ds)
		if !ds.Has(s.ImageID) {
			id, found := env.Master.FirstIn(ds)
			if !found {
				return s, fmt.Errorf("%w in %s", ErrNoImages, ev.Mode)
			}
			s.ImageID = id
		}
	case SelectModel:
		ds := env.Datasets[s.Mode]
		if ds == nil || !slices.Contains(ds.Models(), ev.Model) {
			return s, fmt.Errorf("%w: %q in %s", ErrUnknownModel, ev.Model, s.Mode)
		}
		s.Model = ev.Model
	default:
		return s, fmt.Errorf("unhandled event %T", ev)
	}
	return s, nil
}

// defaultModel picks the model selected when a mode becomes active.
func (env Env) defaultModel(ds *simdata.Dataset) string {
	models := ds.Models()
	if ds.Family() == simdata.FamilyVLM && slices.Contains(models, env.DefaultVLMModel) {
		return env.DefaultVLMModel
	}
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
