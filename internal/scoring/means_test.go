package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

var meansMeta = simdata.Metadata{
	Columns: []string{"m_object_similarities", "m_attack_similarities"},
	Models:  []string{"m"},
}

func newMeansDataset(t testing.TB, family simdata.Family, images int) *simdata.Dataset {
	t.Helper()

	suffix := ""
	if family == simdata.FamilyLVLM {
		suffix = "_0"
	}

	var data []float32
	index := make([]simdata.IndexEntry, images)
	for i := range index {
		index[i] = simdata.IndexEntry{
			ImageID: "img" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Variants: map[string]simdata.VariantRef{
				simdata.VariantSCAM + suffix:   {RowIndex: 2 * i},
				simdata.VariantNoSCAM + suffix: {RowIndex: 2*i + 1},
			},
		}
		// SCAM row: attack wins, NoSCAM row: tie
		data = append(data, 1, 5, 2, 2)
	}

	m, err := simdata.NewMatrix(2*images, 2, data)
	require.NoError(t, err)
	ds, err := simdata.NewDataset(family, meansMeta, index, m)
	require.NoError(t, err)
	return ds
}

func TestComputeMeans(t *testing.T) {
	ds := newMeansDataset(t, simdata.FamilyVLM, 3)

	means := ComputeMeans(ds, "m", 0)
	require.NotNil(t, means)

	scam := means.Variant(simdata.VariantSCAM)
	require.NotNil(t, scam.Object)
	assert.InDelta(t, 0.018, *scam.Object, 1e-3)
	assert.InDelta(t, 0.982, *scam.Attack, 1e-3)

	noscam := means.Variant(simdata.VariantNoSCAM)
	assert.InDelta(t, 0.5, *noscam.Object, 1e-9)

	// no image has a SynthSCAM variant
	synth := means.Variant(simdata.VariantSynthSCAM)
	assert.Nil(t, synth.Object)
	assert.Nil(t, synth.Attack)
}

func TestComputeMeans_PromptSpecific(t *testing.T) {
	ds := newMeansDataset(t, simdata.FamilyLVLM, 2)

	assert.NotNil(t, ComputeMeans(ds, "m", 0).Variant(simdata.VariantSCAM).Object)
	assert.Nil(t, ComputeMeans(ds, "m", 1).Variant(simdata.VariantSCAM).Object)
}

func TestComputeMeans_UnknownModel(t *testing.T) {
	ds := newMeansDataset(t, simdata.FamilyVLM, 2)

	means := ComputeMeans(ds, "other", 0)
	assert.Nil(t, means.Variant(simdata.VariantSCAM).Object)
}

func TestMeansCache(t *testing.T) {
	ds := newMeansDataset(t, simdata.FamilyVLM, 4)
	cache := NewMeansCache()

	first := cache.Get(ds, "m", 0)
	second := cache.Get(ds, "m", 0)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Misses())

	other := cache.Get(ds, "m", 1)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, cache.Misses())
}

func TestMeansCache_EmptyDataset(t *testing.T) {
	m, err := simdata.NewMatrix(0, 2, nil)
	require.NoError(t, err)
	ds, err := simdata.NewDataset(simdata.FamilyVLM, meansMeta, nil, m)
	require.NoError(t, err)

	cache := NewMeansCache()
	assert.Nil(t, cache.Get(ds, "m", 0))
	assert.Equal(t, VariantMean{}, cache.Get(ds, "m", 0).Variant(simdata.VariantSCAM))
}

func BenchmarkComputeMeans(b *testing.B) {
	ds := newMeansDataset(b, simdata.FamilyVLM, 600)

	b.ResetTimer()
	for b.Loop() {
		_ = ComputeMeans(ds, "m", 0)
	}
}
