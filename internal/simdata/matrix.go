package simdata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const matrixHeaderSize = 8

// Matrix is a dense row-major float32 matrix decoded from a .bin asset.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// DecodeMatrix parses the "(rows u32, cols u32) + rows*cols f32" little
// endian layout. The payload length must match the header exactly.
func DecodeMatrix(raw []byte) (*Matrix, error) {
	if len(raw) < matrixHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptMatrix, len(raw))
	}

	rows := binary.LittleEndian.Uint32(raw[0:4])
	cols := binary.LittleEndian.Uint32(raw[4:8])

	// rows*cols fits in uint64 since both are 32 bit; the byte size may not
	n := uint64(rows) * uint64(cols)
	if n > (math.MaxInt-matrixHeaderSize)/4 {
		return nil, fmt.Errorf("%w: header declares %dx%d, too large to address",
			ErrCorruptMatrix, rows, cols)
	}

	want := uint64(matrixHeaderSize) + 4*n
	if uint64(len(raw)) != want {
		return nil, fmt.Errorf("%w: header declares %dx%d (%d bytes) but asset has %d bytes",
			ErrCorruptMatrix, rows, cols, want, len(raw))
	}

	data := make([]float32, int(n))
	if err := binary.Read(bytes.NewReader(raw[matrixHeaderSize:]), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMatrix, err)
	}

	return &Matrix{rows: int(rows), cols: int(cols), data: data}, nil
}

// NewMatrix wraps data as a rows x cols matrix.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrCorruptMatrix, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// EncodeMatrix is the inverse of DecodeMatrix.
func EncodeMatrix(m *Matrix) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, matrixHeaderSize+4*len(m.data)))
	_ = binary.Write(buf, binary.LittleEndian, uint32(m.rows))
	_ = binary.Write(buf, binary.LittleEndian, uint32(m.cols))
	_ = binary.Write(buf, binary.LittleEndian, m.data)
	return buf.Bytes()
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// Row returns a view of row i. Callers must not modify it.
func (m *Matrix) Row(i int) ([]float32, error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrRowOutOfRange, i, m.rows)
	}
	start := i * m.cols
	return m.data[start : start+m.cols : start+m.cols], nil
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float32 {
	return m.data[i*m.cols+j]
}
