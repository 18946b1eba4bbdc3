package simdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

var testMeta = Metadata{
	Columns: []string{
		"ViT-B_object_similarities",
		"ViT-B_attack_similarities",
		"ViT-B-16_object_similarities",
		"ViT-B-16_attack_similarities",
	},
	Models: []string{"ViT-B", "ViT-B-16"},
}

func testIndex() []IndexEntry {
	return []IndexEntry{
		{
			ImageID: "img_SCAM_0", ObjectLabel: "cat", AttackWord: "dog", PostitAreaPct: 4.5,
			Variants: map[string]VariantRef{
				VariantSCAM:      {RowIndex: 0},
				VariantNoSCAM:    {RowIndex: 1},
				VariantSynthSCAM: {RowIndex: 2},
			},
		},
		{
			ImageID: "img_SCAM_1", ObjectLabel: "car", AttackWord: "boat", PostitAreaPct: 2,
			Variants: map[string]VariantRef{
				VariantSCAM:   {RowIndex: 3},
				VariantNoSCAM: {RowIndex: 9},
			},
		},
	}
}

func testMatrix(t *testing.T) *Matrix {
	t.Helper()
	data := make([]float32, 4*4)
	for i := range data {
		data[i] = float32(i) / 4
	}
	m, err := NewMatrix(4, 4, data)
	require.NoError(t, err)
	return m
}

func writeFixture(t *testing.T, root string, family Family, matrix *Matrix) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))

	meta, err := sonic.Marshal(testMeta)
	require.NoError(t, err)
	index, err := sonic.Marshal(testIndex())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, MetadataPath(family)), meta, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, IndexPath(family)), index, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, MatrixPath(family)), EncodeMatrix(matrix), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, PropertiesPath(family)),
		[]byte(`[{"model":"ViT-B","mparams":149.62,"image_size":224},{"model":"ViT-B-16"}]`), 0o644))
}
