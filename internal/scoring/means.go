// Package scoring turns raw similarities into softmax certainties and keeps
// per-model mean certainties across a dataset.
package scoring

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tensorplex-labs/scamviz/internal/simdata"
	"github.com/tensorplex-labs/scamviz/internal/utils/logger"
)

// VariantMean holds mean certainties for one base variant. A nil field means
// no image had a usable score pair.
type VariantMean struct {
	Object *float64 `json:"object_certainty"`
	Attack *float64 `json:"attack_certainty"`
}

// ModelMeans holds the mean certainties of one model, family and prompt.
type ModelMeans struct {
	Model    string                 `json:"model"`
	Family   simdata.Family         `json:"family"`
	Prompt   int                    `json:"prompt"`
	Variants map[string]VariantMean `json:"variants"`
}

// Variant returns the means of a base variant. It is safe on a nil receiver.
func (m *ModelMeans) Variant(base string) VariantMean {
	if m == nil {
		return VariantMean{}
	}
	return m.Variants[base]
}

type meansKey struct {
	model  string
	family simdata.Family
	prompt int
}

// MeansCache computes ModelMeans once per (model, family, prompt).
type MeansCache struct {
	mu      sync.Mutex
	entries map[meansKey]*ModelMeans
	misses  int
}

func NewMeansCache() *MeansCache {
	return &MeansCache{entries: make(map[meansKey]*ModelMeans)}
}

// Get returns the cached means for the key, computing them on first use.
// Repeated calls return the same pointer. An empty dataset yields nil.
func (c *MeansCache) Get(ds *simdata.Dataset, model string, prompt int) *ModelMeans {
	key := meansKey{model: model, family: ds.Family(), prompt: prompt}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.entries[key]; ok {
		return m
	}

	c.misses++
	m := ComputeMeans(ds, model, prompt)
	c.entries[key] = m
	return m
}

// Misses reports how many times Get had to compute.
func (c *MeansCache) Misses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

// ComputeMeans averages the certainties of model over every image of ds.
func ComputeMeans(ds *simdata.Dataset, model string, prompt int) *ModelMeans {
	if ds.Len() == 0 {
		return nil
	}
	startTime := time.Now()

	type certainties struct{ obj, atk []float64 }
	collected := make(map[string]*certainties, len(simdata.BaseVariants))
	for _, base := range simdata.BaseVariants {
		collected[base] = &certainties{}
	}

	for i := 0; i < ds.Len(); i++ {
		rec, err := ds.ImageWithVariants(i, model)
		if err != nil {
			continue
		}
		for _, base := range simdata.BaseVariants {
			vs, ok := rec.Variants[simdata.VariantKey(base, ds.Family(), prompt)]
			if !ok {
				continue
			}
			sObj, sAtk, ok := vs.Pair(model)
			if !ok {
				continue
			}
			obj, atk := Certainty(float64(sObj), float64(sAtk))
			c := collected[base]
			c.obj = append(c.obj, obj)
			c.atk = append(c.atk, atk)
		}
	}

	means := &ModelMeans{
		Model:    model,
		Family:   ds.Family(),
		Prompt:   prompt,
		Variants: make(map[string]VariantMean, len(collected)),
	}
	for base, c := range collected {
		means.Variants[base] = VariantMean{Object: mean(c.obj), Attack: mean(c.atk)}
	}

	logger.Sugar().Infow("Computed model means",
		"model", model,
		"family", ds.Family(),
		"prompt", prompt,
		"images", ds.Len(),
		"took", time.Since(startTime),
	)
	return means
}

func mean(xs []float64) *float64 {
	valid := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) {
			valid = append(valid, x)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	m := stat.Mean(valid, nil)
	return &m
}
