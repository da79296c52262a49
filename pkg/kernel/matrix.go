package kernel

import (
	"encoding/json"
	"fmt"
)

// Matrix is a dense row-major kernel matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

func (m *Matrix) add(i, j int, v float64) { m.data[i*m.cols+j] += v }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// IsSymmetric reports whether m is square and equal to its transpose.
func (m *Matrix) IsSymmetric() bool {
	if m.rows != m.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := i + 1; j < m.cols; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

type matrixJSON struct {
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Data [][]float64 `json:"data"`
}

// MarshalJSON encodes m as {"rows", "cols", "data"} with data as nested rows.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	out := matrixJSON{Rows: m.rows, Cols: m.cols, Data: make([][]float64, m.rows)}
	for i := range out.Data {
		out.Data[i] = m.Row(i)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var in matrixJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.Rows < 0 || in.Cols < 0 || len(in.Data) != in.Rows {
		return fmt.Errorf("matrix: %d data rows for declared %dx%d", len(in.Data), in.Rows, in.Cols)
	}
	*m = *NewMatrix(in.Rows, in.Cols)
	for i, row := range in.Data {
		if len(row) != in.Cols {
			return fmt.Errorf("matrix: row %d has %d entries, want %d", i, len(row), in.Cols)
		}
		copy(m.data[i*in.Cols:], row)
	}
	return nil
}
