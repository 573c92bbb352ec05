package stats

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/mat"

	"gobi/domain/core"
)

// CorrelationMatrix is a symmetric matrix of pairwise correlations between named columns
type CorrelationMatrix struct {
	Columns []string
	values  *mat.SymDense
}

// NewCorrelationMatrix allocates an n×n matrix for the given columns, every cell NaN
func NewCorrelationMatrix(columns []string) *CorrelationMatrix {
	m := &CorrelationMatrix{Columns: columns}
	n := len(columns)
	if n == 0 {
		return m
	}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = math.NaN()
	}
	m.values = mat.NewSymDense(n, data)
	return m
}

// Len returns the number of columns
func (m *CorrelationMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Columns)
}

// IsEmpty reports whether the matrix has no columns
func (m *CorrelationMatrix) IsEmpty() bool {
	return m.Len() == 0
}

// At returns the correlation between columns i and j
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Set stores v at (i, j) and (j, i)
func (m *CorrelationMatrix) Set(i, j int, v float64) {
	m.values.SetSym(i, j, v)
}

// Lookup returns the correlation between two named columns
func (m *CorrelationMatrix) Lookup(a, b string) (float64, bool) {
	i, j := m.indexOf(a), m.indexOf(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.At(i, j), true
}

// Rows returns the matrix as row slices
func (m *CorrelationMatrix) Rows() [][]float64 {
	n := m.Len()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// Sym exposes the backing gonum matrix; nil when empty
func (m *CorrelationMatrix) Sym() *mat.SymDense {
	return m.values
}

func (m *CorrelationMatrix) indexOf(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the matrix as {"columns": [...], "values": [[...]]} with NaN as null
func (m *CorrelationMatrix) MarshalJSON() ([]byte, error) {
	out := struct {
		Columns []string       `json:"columns"`
		Values  [][]core.Float `json:"values"`
	}{
		Columns: m.Columns,
		Values:  make([][]core.Float, m.Len()),
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	for i, row := range m.Rows() {
		out.Values[i] = make([]core.Float, len(row))
		for j, v := range row {
			out.Values[i][j] = core.Float(v)
		}
	}
	return json.Marshal(out)
}
