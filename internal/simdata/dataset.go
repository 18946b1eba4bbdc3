package simdata

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dataset is a loaded, queryable similarity dataset for one family.
// It is read-only after construction and safe for concurrent use.
type Dataset struct {
	family   Family
	metadata Metadata
	columns  []ScoreColumn
	index    []IndexEntry
	matrix   *Matrix
	idToPos  map[string]int
	strict   bool
}

// Option tweaks dataset behaviour.
type Option func(*Dataset)

// WithStrictRows makes variant lookups fail when a variant row is out of
// range instead of silently dropping the variant.
func WithStrictRows(strict bool) Option {
	return func(d *Dataset) {
		d.strict = strict
	}
}

// NewDataset assembles a dataset from already decoded parts.
func NewDataset(family Family, meta Metadata, index []IndexEntry, matrix *Matrix, opts ...Option) (*Dataset, error) {
	if matrix == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidAsset)
	}
	if _, cols := matrix.Dims(); cols != len(meta.Columns) {
		return nil, fmt.Errorf("%w: matrix has %d columns but metadata names %d",
			ErrCorruptMatrix, cols, len(meta.Columns))
	}

	idToPos := make(map[string]int, len(index))
	for pos, entry := range index {
		if _, dup := idToPos[entry.ImageID]; dup {
			return nil, fmt.Errorf("%w: duplicate image id %q", ErrInvalidAsset, entry.ImageID)
		}
		idToPos[entry.ImageID] = pos
	}

	d := &Dataset{
		family:   family,
		metadata: meta,
		columns:  parseColumns(meta.Columns, meta.Models),
		index:    index,
		matrix:   matrix,
		idToPos:  idToPos,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dataset) Family() Family        { return d.family }
func (d *Dataset) Metadata() Metadata    { return d.metadata }
func (d *Dataset) Models() []string      { return d.metadata.Models }
func (d *Dataset) Entries() []IndexEntry { return d.index }
func (d *Dataset) Len() int              { return len(d.index) }
func (d *Dataset) Rows() int {
	rows, _ := d.matrix.Dims()
	return rows
}

// IndexOf returns the position of imageID in the index.
func (d *Dataset) IndexOf(imageID string) (int, bool) {
	pos, ok := d.idToPos[imageID]
	return pos, ok
}

func (d *Dataset) Has(imageID string) bool {
	_, ok := d.idToPos[imageID]
	return ok
}

// SimilaritiesForRow maps every column name to its value in row.
func (d *Dataset) SimilaritiesForRow(row int) (map[string]float32, error) {
	values, err := d.matrix.Row(row)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float32, len(values))
	for i, col := range d.metadata.Columns {
		out[col] = values[i]
	}
	return out, nil
}

// variantScores reads a row and keeps the columns attributed to model.
// An empty model keeps every column.
func (d *Dataset) variantScores(row int, model string) (VariantScores, error) {
	values, err := d.matrix.Row(row)
	if err != nil {
		return VariantScores{}, err
	}

	vs := VariantScores{Similarities: make(map[string]float32)}
	for i, col := range d.columns {
		if model != "" && col.Model != model {
			continue
		}
		vs.Similarities[col.Name] = values[i]
		if col.Model != "" {
			vs.Scores = append(vs.Scores, Score{Model: col.Model, Subject: col.Subject, Value: values[i]})
		}
	}
	return vs, nil
}

// ImageWithVariants joins the entry at imageIndex with the similarities of
// each of its variants, filtered to model when model is not empty.
func (d *Dataset) ImageWithVariants(imageIndex int, model string) (*ImageRecord, error) {
	if imageIndex < 0 || imageIndex >= len(d.index) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrImageOutOfRange, imageIndex, len(d.index))
	}

	entry := d.index[imageIndex]
	rec := &ImageRecord{
		ImageID:       entry.ImageID,
		ObjectLabel:   entry.ObjectLabel,
		AttackWord:    entry.AttackWord,
		PostitAreaPct: entry.PostitAreaPct,
		Variants:      make(map[string]VariantScores, len(entry.Variants)),
	}

	for variant, ref := range entry.Variants {
		vs, err := d.variantScores(ref.RowIndex, model)
		if err != nil {
			if d.strict {
				return nil, fmt.Errorf("image %s variant %s: %w", entry.ImageID, variant, err)
			}
			log.Warn().
				Err(err).
				Str("family", string(d.family)).
				Str("image_id", entry.ImageID).
				Str("variant", variant).
				Msg("skipping variant with unreadable row")
			continue
		}
		rec.Variants[variant] = vs
	}

	return rec, nil
}

// FindImageByID is ImageWithVariants keyed by image id.
func (d *Dataset) FindImageByID(imageID, model string) (*ImageRecord, error) {
	pos, ok := d.idToPos[imageID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, imageID)
	}
	return d.ImageWithVariants(pos, model)
}
