package simdata

import "errors"

// Family is a model family tag; each family has its own asset set.
type Family string

const (
	FamilyVLM  Family = "vlm"
	FamilyLVLM Family = "lvlm"
)

// Subject says which side of the decision a similarity score belongs to.
type Subject string

const (
	SubjectObject Subject = "object"
	SubjectAttack Subject = "attack"
)

// Base variant tags. LVLM variants carry a "_<prompt>" suffix.
const (
	VariantSCAM      = "SCAM"
	VariantNoSCAM    = "NoSCAM"
	VariantSynthSCAM = "SynthSCAM"
)

// BaseVariants lists the variants in display order.
var BaseVariants = []string{VariantSCAM, VariantNoSCAM, VariantSynthSCAM}

var (
	ErrCorruptMatrix   = errors.New("corrupt similarity matrix")
	ErrRowOutOfRange   = errors.New("row index out of range")
	ErrImageOutOfRange = errors.New("image index out of range")
	ErrImageNotFound   = errors.New("image id not found")
	ErrInvalidAsset    = errors.New("invalid asset")
)

// Metadata describes the column layout of the similarity matrix.
type Metadata struct {
	Columns []string `json:"columns"`
	Models  []string `json:"models"`
}

// VariantRef points a variant at a row of the similarity matrix.
type VariantRef struct {
	RowIndex int `json:"row_index"`
}

// IndexEntry is one dataset example and the rows of its variants.
type IndexEntry struct {
	ImageID       string                `json:"image_id"`
	ObjectLabel   string                `json:"object_label"`
	AttackWord    string                `json:"attack_word"`
	PostitAreaPct float64               `json:"postit_area_pct"`
	Variants      map[string]VariantRef `json:"variants"`
}

// ScoreColumn is the structured reading of a matrix column name.
type ScoreColumn struct {
	Name    string
	Model   string // empty when the column does not follow the model naming
	Subject Subject
}

// Score is a single similarity value attributed to a model and subject.
type Score struct {
	Model   string  `json:"model"`
	Subject Subject `json:"subject"`
	Value   float32 `json:"value"`
}

// VariantScores holds the similarities of one variant row.
type VariantScores struct {
	Similarities map[string]float32 `json:"similarities"`
	Scores       []Score            `json:"scores"`
}

// Pair returns the object and attack scores of model, if both are present.
func (v VariantScores) Pair(model string) (obj, atk float32, ok bool) {
	var haveObj, haveAtk bool
	for _, s := range v.Scores {
		if s.Model != model {
			continue
		}
		switch s.Subject {
		case SubjectObject:
			obj, haveObj = s.Value, true
		case SubjectAttack:
			atk, haveAtk = s.Value, true
		}
	}
	return obj, atk, haveObj && haveAtk
}

// ImageRecord is an index entry joined with its variant similarities.
type ImageRecord struct {
	ImageID       string                   `json:"image_id"`
	ObjectLabel   string                   `json:"object_label"`
	AttackWord    string                   `json:"attack_word"`
	PostitAreaPct float64                  `json:"postit_area_pct"`
	Variants      map[string]VariantScores `json:"variants"`
}

// ModelProperties is one entry of {family}_models_properties.json.
type ModelProperties struct {
	Model           string   `json:"model"`
	MParams         *float64 `json:"mparams,omitempty"`
	ImageSize       *int     `json:"image_size,omitempty"`
	PretrainingData string   `json:"pretraining_data,omitempty"`
}
