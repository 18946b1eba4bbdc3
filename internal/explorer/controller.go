// Package explorer drives the similarity explorer: a shared navigation order
// over both model families, mode/model/prompt selection and the view model
// with softmax score bars and mean markers.
package explorer

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/scamviz/internal/scoring"
	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

// Config holds the explorer start-up choices.
type Config struct {
	InitialIndex    int
	DefaultVLMModel string
	PromptCount     int
}

// Controller owns the explorer state. All mutations go through Dispatch.
type Controller struct {
	mu         sync.Mutex
	env        Env
	properties map[simdata.Family][]simdata.ModelProperties
	means      *scoring.MeansCache
	state      State
}

// NewController starts in VLM mode on the master list entry at
// cfg.InitialIndex, falling back to the first entry.
func NewController(
	cfg Config,
	datasets map[simdata.Family]*simdata.Dataset,
	properties map[simdata.Family][]simdata.ModelProperties,
) (*Controller, error) {
	vlm, ok := datasets[simdata.FamilyVLM]
	if !ok {
		return nil, fmt.Errorf("%w: %s dataset is required", ErrUnknownMode, simdata.FamilyVLM)
	}

	env := Env{
		Datasets:        datasets,
		Master:          NewMasterList(datasets[simdata.FamilyVLM], datasets[simdata.FamilyLVLM]),
		DefaultVLMModel: cfg.DefaultVLMModel,
		PromptCount:     cfg.PromptCount,
	}
	if env.Master.Len() == 0 {
		return nil, ErrNoImages
	}

	id := env.Master.At(cfg.InitialIndex)
	if id == "" {
		id = env.Master.At(0)
	}

	c := &Controller{
		env:        env,
		properties: properties,
		means:      scoring.NewMeansCache(),
		state:      State{Mode: simdata.FamilyVLM, ImageID: id, Model: env.defaultModel(vlm)},
	}

	// the initial id may only exist in the other family
	if !vlm.Has(id) {
		s, err := Reduce(env, c.state, SetMode{Mode: simdata.FamilyVLM})
		if err != nil {
			return nil, err
		}
		c.state = s
	}

	log.Info().
		Int("master_total", env.Master.Len()).
		Str("image_id", c.state.ImageID).
		Str("model", c.state.Model).
		Msg("explorer initialized")
	return c, nil
}

// Dispatch applies ev and returns the resulting view. A rejected event leaves
// the state unchanged. Navigation can land on an id the active family does
// not have; the state is kept and the render error wraps
// simdata.ErrImageNotFound.
func (c *Controller) Dispatch(ev Event) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.env, c.state, ev)
	if err != nil {
		log.Warn().Err(err).Type("event", ev).Msg("explorer event rejected")
		return View{}, err
	}
	c.state = next
	return c.view()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View renders the current state.
func (c *Controller) View() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Means exposes the cached mean certainties for the current selection.
func (c *Controller) Means() *scoring.ModelMeans {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.means.Get(c.env.Datasets[c.state.Mode], c.state.Model, c.state.Prompt)
}

func (c *Controller) view() (View, error) {
	s := c.state
	ds := c.env.Datasets[s.Mode]

	rec, err := ds.FindImageByID(s.ImageID, s.Model)
	if err != nil {
		return View{}, fmt.Errorf("render %s: %w", s.ImageID, err)
	}

	means := c.means.Get(ds, s.Model, s.Prompt)

	return View{
		State:         s,
		ExampleNumber: c.env.Master.IndexOf(s.ImageID) + 1,
		MasterTotal:   c.env.Master.Len(),
		ModeTotal:     ds.Len(),
		Models:        ds.Models(),
		ObjectLabel:   labelOrUnknown(rec.ObjectLabel),
		AttackWord:    labelOrUnknown(rec.AttackWord),
		PostitAreaPct: rec.PostitAreaPct,
		Variants:      buildVariants(rec, s, means),
		ModelInfo:     buildModelInfo(c.properties[s.Mode], s),
	}, nil
}
