package simdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DirSource(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyLVLM, testMatrix(t))

	ds, err := Load(context.Background(), DirSource{Root: root}, FamilyLVLM)
	require.NoError(t, err)

	assert.Equal(t, FamilyLVLM, ds.Family())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 4, ds.Rows())
	assert.Equal(t, testMeta, ds.Metadata())

	pos, ok := ds.IndexOf("img_SCAM_1")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestLoad_MissingAsset(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyVLM, testMatrix(t))
	require.NoError(t, os.Remove(filepath.Join(root, IndexPath(FamilyVLM))))

	ds, err := Load(context.Background(), DirSource{Root: root}, FamilyVLM)
	assert.Error(t, err)
	assert.Nil(t, ds)
}

func TestLoad_CorruptMatrix(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyVLM, testMatrix(t))

	path := filepath.Join(root, MatrixPath(FamilyVLM))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)-4], 0o644))

	_, err = Load(context.Background(), DirSource{Root: root}, FamilyVLM)
	assert.ErrorIs(t, err, ErrCorruptMatrix)
}

func TestLoad_OversizedMatrixHeader(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyVLM, testMatrix(t))
	require.NoError(t, os.WriteFile(filepath.Join(root, MatrixPath(FamilyVLM)), header(1<<31, 1<<31), 0o644))

	_, err := Load(context.Background(), DirSource{Root: root}, FamilyVLM)
	assert.ErrorIs(t, err, ErrCorruptMatrix)
}

func TestLoad_InvalidIndex(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyVLM, testMatrix(t))
	require.NoError(t, os.WriteFile(filepath.Join(root, IndexPath(FamilyVLM)),
		[]byte(`[{"image_id":"a","variants":{"SCAM":{"row_index":-1}}}]`), 0o644))

	_, err := Load(context.Background(), DirSource{Root: root}, FamilyVLM)
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestLoad_HTTPSource(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, FamilyVLM, testMatrix(t))

	var zstdServed atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/"))))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if strings.HasSuffix(r.URL.Path, ".bin") && strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				panic(err)
			}
			raw = enc.EncodeAll(raw, nil)
			_ = enc.Close()
			w.Header().Set("Content-Encoding", "zstd")
			zstdServed.Store(true)
		}
		if _, err := w.Write(raw); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	src, err := NewHTTPSource(HTTPConfig{BaseURL: ts.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)

	ds, err := Load(context.Background(), src, FamilyVLM)
	require.NoError(t, err)
	assert.True(t, zstdServed.Load())

	sims, err := ds.SimilaritiesForRow(3)
	require.NoError(t, err)
	assert.Equal(t, float32(15)/4, sims["ViT-B-16_attack_similarities"])

	props, err := LoadModelProperties(context.Background(), src, FamilyVLM)
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.NotNil(t, props[0].MParams)
	assert.InDelta(t, 149.62, *props[0].MParams, 1e-9)
	assert.Nil(t, props[1].ImageSize)
}

func TestLoad_HTTPNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	src, err := NewHTTPSource(HTTPConfig{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = Load(context.Background(), src, FamilyVLM)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewHTTPSource_EmptyURL(t *testing.T) {
	_, err := NewHTTPSource(HTTPConfig{})
	assert.Error(t, err)
}
