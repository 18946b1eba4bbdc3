package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tensorplex-labs/scamviz/internal/config"
	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

var families = []simdata.Family{simdata.FamilyVLM, simdata.FamilyLVLM}

func newSource(cfg *config.AppConfig) (simdata.Source, error) {
	if !cfg.UsesHTTP() {
		return simdata.DirSource{Root: cfg.AssetRoot}, nil
	}
	return simdata.NewHTTPSource(simdata.HTTPConfig{
		BaseURL:   cfg.AssetBaseURL,
		Timeout:   cfg.ClientTimeout,
		RetryMax:  cfg.ClientRetryMax,
		RetryWait: cfg.ClientRetryWait,
	})
}

func parseFamily(s string) (simdata.Family, error) {
	for _, f := range families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown family %q, want vlm or lvlm", s)
}

type loaded struct {
	datasets   map[simdata.Family]*simdata.Dataset
	properties map[simdata.Family][]simdata.ModelProperties
}

// loadFamilies loads the datasets of fams concurrently. Model properties are
// optional; a family without them only lacks the model info panel.
func loadFamilies(ctx context.Context, cfg *config.AppConfig, fams ...simdata.Family) (*loaded, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}

	out := &loaded{
		datasets:   make(map[simdata.Family]*simdata.Dataset, len(fams)),
		properties: make(map[simdata.Family][]simdata.ModelProperties, len(fams)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, fam := range fams {
		g.Go(func() error {
			ds, err := simdata.Load(gctx, src, fam, simdata.WithStrictRows(cfg.StrictRows))
			if err != nil {
				return err
			}
			props, err := simdata.LoadModelProperties(gctx, src, fam)
			if err != nil {
				log.Warn().Err(err).Str("family", string(fam)).Msg("model properties unavailable")
			}

			mu.Lock()
			defer mu.Unlock()
			out.datasets[fam] = ds
			out.properties[fam] = props
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
