package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

// writeAssets writes a one-image VLM asset tree: row 0 is the SCAM variant,
// row 1 the NoSCAM variant.
func writeAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))

	meta := simdata.Metadata{
		Columns: []string{
			simdata.ColumnName("RN50", simdata.SubjectObject),
			simdata.ColumnName("RN50", simdata.SubjectAttack),
		},
		Models: []string{"RN50"},
	}
	index := []simdata.IndexEntry{{
		ImageID:     "img_SCAM",
		ObjectLabel: "cat",
		AttackWord:  "dog",
		Variants: map[string]simdata.VariantRef{
			simdata.VariantSCAM:   {RowIndex: 0},
			simdata.VariantNoSCAM: {RowIndex: 1},
		},
	}}
	matrix, err := simdata.NewMatrix(2, 2, []float32{0.5, 0.25, 0.75, 0.125})
	require.NoError(t, err)

	rawMeta, err := sonic.Marshal(meta)
	require.NoError(t, err)
	rawIndex, err := sonic.Marshal(index)
	require.NoError(t, err)

	fam := simdata.FamilyVLM
	require.NoError(t, os.WriteFile(filepath.Join(root, simdata.MetadataPath(fam)), rawMeta, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, simdata.IndexPath(fam)), rawIndex, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, simdata.MatrixPath(fam)), simdata.EncodeMatrix(matrix), 0o644))
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspectSummary(t *testing.T) {
	t.Setenv("ASSET_ROOT", writeAssets(t))

	out, err := run(t, "inspect", "summary", "vlm")
	require.NoError(t, err)

	var got datasetSummary
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, datasetSummary{
		Family:  simdata.FamilyVLM,
		Images:  1,
		Rows:    2,
		Models:  []string{"RN50"},
		Columns: []string{"RN50_object_similarities", "RN50_attack_similarities"},
	}, got)
}

func TestInspectRow(t *testing.T) {
	t.Setenv("ASSET_ROOT", writeAssets(t))

	out, err := run(t, "inspect", "row", "vlm", "1")
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]float64{
		"RN50_object_similarities": 0.75,
		"RN50_attack_similarities": 0.125,
	}, got)

	_, err = run(t, "inspect", "row", "vlm", "7")
	assert.ErrorIs(t, err, simdata.ErrRowOutOfRange)

	_, err = run(t, "inspect", "row", "vlm", "x")
	assert.Error(t, err)
}

func TestInspectImage(t *testing.T) {
	t.Setenv("ASSET_ROOT", writeAssets(t))

	out, err := run(t, "inspect", "image", "vlm", "img_SCAM", "--model", "RN50")
	require.NoError(t, err)

	var rec simdata.ImageRecord
	require.NoError(t, sonic.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "cat", rec.ObjectLabel)
	require.Contains(t, rec.Variants, simdata.VariantSCAM)
	obj, atk, ok := rec.Variants[simdata.VariantSCAM].Pair("RN50")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), obj)
	assert.Equal(t, float32(0.25), atk)

	_, err = run(t, "inspect", "image", "vlm", "missing")
	assert.ErrorIs(t, err, simdata.ErrImageNotFound)
}

func TestInspectMeans(t *testing.T) {
	t.Setenv("ASSET_ROOT", writeAssets(t))

	out, err := run(t, "inspect", "means", "vlm", "RN50")
	require.NoError(t, err)

	var got struct {
		Model    string `json:"model"`
		Variants map[string]struct {
			Object *float64 `json:"object_certainty"`
			Attack *float64 `json:"attack_certainty"`
		} `json:"variants"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, "RN50", got.Model)

	scam := got.Variants[simdata.VariantSCAM]
	require.NotNil(t, scam.Object)
	require.NotNil(t, scam.Attack)
	assert.InDelta(t, 1.0, *scam.Object+*scam.Attack, 1e-9)
	assert.Greater(t, *scam.Object, *scam.Attack)

	assert.Nil(t, got.Variants[simdata.VariantSynthSCAM].Object, "no SynthSCAM rows")
}

func TestInspectUnknownFamily(t *testing.T) {
	t.Setenv("ASSET_ROOT", writeAssets(t))

	_, err := run(t, "inspect", "row", "clip", "0")
	assert.ErrorContains(t, err, "unknown family")
}

func TestInspectMissingAssets(t *testing.T) {
	t.Setenv("ASSET_ROOT", t.TempDir())

	_, err := run(t, "inspect", "row", "vlm", "0")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspectOverHTTP(t *testing.T) {
	ts := httptest.NewServer(http.FileServer(http.Dir(writeAssets(t))))
	defer ts.Close()
	t.Setenv("ASSET_ROOT", t.TempDir())
	t.Setenv("ASSET_BASE_URL", ts.URL)
	t.Setenv("CLIENT_RETRY_MAX", "0")

	out, err := run(t, "inspect", "row", "vlm", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "RN50_object_similarities")
}

func TestParseFamily(t *testing.T) {
	f, err := parseFamily("lvlm")
	require.NoError(t, err)
	assert.Equal(t, simdata.FamilyLVLM, f)

	_, err = parseFamily("LVLM")
	assert.Error(t, err)
}
