package domain

import "math"

// DistanceMatrix is a static lookup of travel miles between known locations.
// Location ids are row/column indexes; the hub is location 0 by convention.
//
// Symmetry is a property of the input data and is not enforced here; use
// IsSymmetric to check a dataset at load time. The matrix is read-only after
// construction and safe for concurrent use.
type DistanceMatrix struct {
	miles [][]float64
}

// NewDistanceMatrix copies rows into a matrix. Rows must form a square with a
// zero diagonal and finite, non-negative entries.
func NewDistanceMatrix(rows [][]float64) (*DistanceMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, invalid("distance matrix", "must have at least one location")
	}

	miles := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, invalid("distance matrix", "row %d has %d columns, want %d", i, len(row), n)
		}
		for j, d := range row {
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, invalid("distance matrix", "entry [%d][%d]=%v must be a non-negative number", i, j, d)
			}
		}
		if row[i] != 0 {
			return nil, invalid("distance matrix", "diagonal entry [%d][%d]=%v must be 0", i, i, row[i])
		}
		miles[i] = append([]float64(nil), row...)
	}

	return &DistanceMatrix{miles: miles}, nil
}

// NewDistanceMatrixFromLowerTriangle mirrors a lower triangular table, where
// row i holds distances to locations 0..i (the last entry being the diagonal).
func NewDistanceMatrixFromLowerTriangle(rows [][]float64) (*DistanceMatrix, error) {
	n := len(rows)
	full := make([][]float64, n)
	for i := range full {
		full[i] = make([]float64, n)
	}

	for i, row := range rows {
		if len(row) != i+1 {
			return nil, invalid("distance table", "row %d has %d entries, want %d", i, len(row), i+1)
		}
		for j, d := range row {
			full[i][j] = d
			full[j][i] = d
		}
	}

	return NewDistanceMatrix(full)
}

// Distance between two locations. Both must satisfy Contains.
func (m *DistanceMatrix) Distance(a, b int) float64 {
	return m.miles[a][b]
}

// Size is the number of known locations.
func (m *DistanceMatrix) Size() int { return len(m.miles) }

// Contains reports whether loc is a valid location id for this matrix.
func (m *DistanceMatrix) Contains(loc int) bool {
	return loc >= 0 && loc < len(m.miles)
}

// IsSymmetric reports whether distance(a,b) == distance(b,a) for every pair.
func (m *DistanceMatrix) IsSymmetric() bool {
	for i := range m.miles {
		for j := i + 1; j < len(m.miles); j++ {
			if m.miles[i][j] != m.miles[j][i] {
				return false
			}
		}
	}
	return true
}

// PathDistance sums consecutive legs of route without a closing leg.
func (m *DistanceMatrix) PathDistance(route []int) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += m.miles[route[i-1]][route[i]]
	}
	return total
}

// Rows returns a copy of the matrix contents.
func (m *DistanceMatrix) Rows() [][]float64 {
	out := make([][]float64, len(m.miles))
	for i, row := range m.miles {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
