package simdata

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMatrix(t *testing.T) {
	raw := make([]byte, 8+4*6)
	binary.LittleEndian.PutUint32(raw[0:], 2)
	binary.LittleEndian.PutUint32(raw[4:], 3)
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint32(raw[8+4*i:], math.Float32bits(float32(i)+0.5))
	}

	m, err := DecodeMatrix(raw)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	for r := 0; r < rows; r++ {
		row, err := m.Row(r)
		require.NoError(t, err)
		for c := 0; c < cols; c++ {
			assert.Equal(t, float32(r*cols+c)+0.5, row[c])
			assert.Equal(t, row[c], m.At(r, c))
		}
	}
}

func header(rows, cols uint32) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:], rows)
	binary.LittleEndian.PutUint32(raw[4:], cols)
	return raw
}

func TestDecodeMatrix_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"short header", []byte{1, 0, 0}},
		{"truncated payload", func() []byte {
			raw := make([]byte, 8+4)
			binary.LittleEndian.PutUint32(raw[0:], 2)
			binary.LittleEndian.PutUint32(raw[4:], 2)
			return raw
		}()},
		{"trailing bytes", func() []byte {
			raw := make([]byte, 8+4+1)
			binary.LittleEndian.PutUint32(raw[0:], 1)
			binary.LittleEndian.PutUint32(raw[4:], 1)
			return raw
		}()},
		{"size wraps around", header(1<<31, 1<<31)},
		{"largest header", header(math.MaxUint32, math.MaxUint32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMatrix(tt.raw)
			assert.ErrorIs(t, err, ErrCorruptMatrix)
		})
	}
}

func TestEncodeMatrix_RoundTrip(t *testing.T) {
	m := testMatrix(t)

	decoded, err := DecodeMatrix(EncodeMatrix(m))
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestMatrixRow_OutOfRange(t *testing.T) {
	m := testMatrix(t)

	_, err := m.Row(-1)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
	_, err = m.Row(4)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}
