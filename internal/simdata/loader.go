// Package simdata loads the similarity assets of a model family and answers
// row, image and variant lookups over them.
package simdata

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func MetadataPath(family Family) string {
	return fmt.Sprintf("data/%s_similarity_metadata.json", family)
}

func IndexPath(family Family) string {
	return fmt.Sprintf("data/%s_similarity_index.json", family)
}

func MatrixPath(family Family) string {
	return fmt.Sprintf("data/%s_similarity_data.bin", family)
}

func PropertiesPath(family Family) string {
	return fmt.Sprintf("data/%s_models_properties.json", family)
}

// Load fetches metadata, matrix and index concurrently and returns a dataset
// once all three are fetched and valid. Any failure aborts the whole load.
func Load(ctx context.Context, src Source, family Family, opts ...Option) (*Dataset, error) {
	startTime := time.Now()

	var (
		meta   Metadata
		index  []IndexEntry
		matrix *Matrix
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := src.Fetch(gctx, MetadataPath(family))
		if err != nil {
			return err
		}
		if err := validateAsset(MetadataPath(family), metadataSchema, raw); err != nil {
			return err
		}
		if err := sonic.Unmarshal(raw, &meta); err != nil {
			return fmt.Errorf("%w: unmarshal metadata: %v", ErrInvalidAsset, err)
		}
		return nil
	})
	g.Go(func() error {
		raw, err := src.Fetch(gctx, MatrixPath(family))
		if err != nil {
			return err
		}
		m, err := DecodeMatrix(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", MatrixPath(family), err)
		}
		matrix = m
		return nil
	})
	g.Go(func() error {
		raw, err := src.Fetch(gctx, IndexPath(family))
		if err != nil {
			return err
		}
		if err := validateAsset(IndexPath(family), indexSchema, raw); err != nil {
			return err
		}
		if err := sonic.Unmarshal(raw, &index); err != nil {
			return fmt.Errorf("%w: unmarshal index: %v", ErrInvalidAsset, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("family", string(family)).Msg("failed to load similarity data")
		return nil, fmt.Errorf("load %s similarity data: %w", family, err)
	}

	ds, err := NewDataset(family, meta, index, matrix, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s similarity data: %w", family, err)
	}

	rows, cols := matrix.Dims()
	log.Info().
		Str("family", string(family)).
		Int("images", ds.Len()).
		Int("rows", rows).
		Int("columns", cols).
		Dur("took", time.Since(startTime)).
		Msg("similarity data loaded")

	return ds, nil
}

// LoadModelProperties fetches the per-model properties of a family.
func LoadModelProperties(ctx context.Context, src Source, family Family) ([]ModelProperties, error) {
	raw, err := src.Fetch(ctx, PropertiesPath(family))
	if err != nil {
		return nil, err
	}
	if err := validateAsset(PropertiesPath(family), propertiesSchema, raw); err != nil {
		return nil, err
	}

	var props []ModelProperties
	if err := sonic.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("%w: unmarshal model properties: %v", ErrInvalidAsset, err)
	}
	return props, nil
}
