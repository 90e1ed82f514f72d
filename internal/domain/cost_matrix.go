package domain

import (
	"errors"
	"fmt"
	"math"
)

// One cell of a cost matrix.
type CostEntry struct {
	FromID string
	ToID   string
	Cost   float64
}

// CostMatrix is a dense pairwise travel-cost table indexed by location id.
//
// Costs are stored row-major for every ordered pair, self-distances included.
// A matrix is symmetric when built from a symmetric distance function, but the
// structure does not assume it: Override can set a single direction.
type CostMatrix struct {
	ids   []string
	index map[string]int
	costs []float64
}

// NewCostMatrix allocates an all-zero matrix over ids. The ids must be unique.
func NewCostMatrix(ids []string) (*CostMatrix, error) {
	if len(ids) == 0 {
		return nil, &EmptyInputError{Op: "new cost matrix"}
	}

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if first, ok := index[id]; ok {
			return nil, &DuplicateIdentifierError{ID: id, FirstIndex: first, SecondIndex: i}
		}
		index[id] = i
	}

	return &CostMatrix{
		ids:   append([]string(nil), ids...),
		index: index,
		costs: make([]float64, len(ids)*len(ids)),
	}, nil
}

// Len returns the number of locations (the matrix is Len x Len).
func (m *CostMatrix) Len() int { return len(m.ids) }

// IDs returns the location ids in matrix order.
func (m *CostMatrix) IDs() []string { return append([]string(nil), m.ids...) }

// Has reports whether id is covered by the matrix.
func (m *CostMatrix) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Cost returns the travel cost from one location to another.
func (m *CostMatrix) Cost(fromID, toID string) (float64, error) {
	i, ok := m.index[fromID]
	if !ok {
		return 0, &UnknownLocationError{ID: fromID}
	}
	j, ok := m.index[toID]
	if !ok {
		return 0, &UnknownLocationError{ID: toID}
	}
	return m.costs[i*len(m.ids)+j], nil
}

// At returns the cost by matrix position. It panics on out-of-range indexes.
func (m *CostMatrix) At(i, j int) float64 { return m.costs[i*len(m.ids)+j] }

// IndexOf returns the matrix position of id.
func (m *CostMatrix) IndexOf(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// SetAt stores a cost by matrix position. Used by builders; rejects invalid costs.
func (m *CostMatrix) SetAt(i, j int, cost float64) error {
	if err := checkCost(cost); err != nil {
		return fmt.Errorf("set cost %q -> %q: %w", m.ids[i], m.ids[j], err)
	}
	m.costs[i*len(m.ids)+j] = cost
	return nil
}

// Override replaces the cost of a single direction (from -> to) with an
// externally supplied value, e.g. a road-network cost.
func (m *CostMatrix) Override(fromID, toID string, cost float64) error {
	i, ok := m.index[fromID]
	if !ok {
		return fmt.Errorf("override cost: %w", &UnknownLocationError{ID: fromID})
	}
	j, ok := m.index[toID]
	if !ok {
		return fmt.Errorf("override cost: %w", &UnknownLocationError{ID: toID})
	}
	if err := checkCost(cost); err != nil {
		return fmt.Errorf("override cost %q -> %q: %w", fromID, toID, err)
	}
	m.costs[i*len(m.ids)+j] = cost
	return nil
}

// IsSymmetric reports whether cost(p,q) == cost(q,p) for every pair.
func (m *CostMatrix) IsSymmetric() bool {
	n := len(m.ids)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.costs[i*n+j] != m.costs[j*n+i] {
				return false
			}
		}
	}
	return true
}

// Entries lists every ordered pair, row by row.
func (m *CostMatrix) Entries() []CostEntry {
	n := len(m.ids)
	out := make([]CostEntry, 0, n*n)
	for i, from := range m.ids {
		for j, to := range m.ids {
			out = append(out, CostEntry{FromID: from, ToID: to, Cost: m.costs[i*n+j]})
		}
	}
	return out
}

// Costs returns a copy of the row-major cost slice.
func (m *CostMatrix) Costs() []float64 { return append([]float64(nil), m.costs...) }

// CostMatrixFromRows rebuilds a matrix from ids and a row-major cost slice,
// e.g. after decoding a cached copy.
func CostMatrixFromRows(ids []string, costs []float64) (*CostMatrix, error) {
	m, err := NewCostMatrix(ids)
	if err != nil {
		return nil, err
	}
	if len(costs) != len(ids)*len(ids) {
		return nil, fmt.Errorf("cost matrix from rows: got %d costs for %d ids", len(costs), len(ids))
	}
	for k, c := range costs {
		if err := checkCost(c); err != nil {
			return nil, fmt.Errorf("cost matrix from rows: cell %d: %w", k, err)
		}
	}
	copy(m.costs, costs)
	return m, nil
}

var errInvalidCost = errors.New("cost must be finite and non-negative")

func checkCost(c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return fmt.Errorf("%w (got %v)", errInvalidCost, c)
	}
	return nil
}
