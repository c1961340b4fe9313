package rules

import (
	"errors"
	"fmt"
)

// Rank is one merge tier. Index doubles as the level.
type Rank struct {
	Index  int
	Radius float64
	Score  int
	Name   string
}

// Table is the immutable, ordered list of ranks plus the size of the
// drawable prefix (the only ranks that can be dropped directly).
type Table struct {
	ranks    []Rank
	drawable int
}

// DefaultRanks returns the reference ten-rank table.
func DefaultRanks() []Rank {
	return []Rank{
		{Index: 0, Radius: 16, Score: 1, Name: "Cherry"},
		{Index: 1, Radius: 24, Score: 3, Name: "Grape"},
		{Index: 2, Radius: 32, Score: 6, Name: "Orange"},
		{Index: 3, Radius: 40, Score: 10, Name: "Apple"},
		{Index: 4, Radius: 50, Score: 15, Name: "Pear"},
		{Index: 5, Radius: 58, Score: 21, Name: "Lemon"},
		{Index: 6, Radius: 68, Score: 28, Name: "Peach"},
		{Index: 7, Radius: 80, Score: 36, Name: "Mango"},
		{Index: 8, Radius: 92, Score: 45, Name: "Melon"},
		{Index: 9, Radius: 106, Score: 55, Name: "Watermelon"},
	}
}

// DefaultTable returns the reference table with five drawable ranks.
func DefaultTable() Table {
	t, err := NewTable(DefaultRanks(), 5)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates ranks and returns a Table. Indexes are reassigned from
// slice order.
func NewTable(ranks []Rank, drawable int) (Table, error) {
	if len(ranks) < 2 {
		return Table{}, errors.New("rules: rank table needs at least two ranks")
	}
	if drawable <= 0 || drawable >= len(ranks) {
		return Table{}, fmt.Errorf("rules: drawable ranks must be in [1, %d), got %d", len(ranks), drawable)
	}

	out := make([]Rank, len(ranks))
	for i, r := range ranks {
		if r.Radius <= 0 {
			return Table{}, fmt.Errorf("rules: rank %d: radius must be positive", i)
		}
		if r.Score <= 0 {
			return Table{}, fmt.Errorf("rules: rank %d: score must be positive", i)
		}
		if i > 0 && r.Radius <= ranks[i-1].Radius {
			return Table{}, fmt.Errorf("rules: rank %d: radius %.1f must exceed rank %d radius %.1f",
				i, r.Radius, i-1, ranks[i-1].Radius)
		}
		r.Index = i
		out[i] = r
	}

	return Table{ranks: out, drawable: drawable}, nil
}

// Len returns the number of ranks (N).
func (t Table) Len() int {
	return len(t.ranks)
}

// Drawable returns K, the number of ranks that can be dropped.
func (t Table) Drawable() int {
	return t.drawable
}

// Terminal returns the index of the last rank.
func (t Table) Terminal() int {
	return len(t.ranks) - 1
}

// IsTerminal reports whether rank i has no successor.
func (t Table) IsTerminal(i int) bool {
	return i == t.Terminal()
}

// At returns rank i. It panics on an out-of-range index like a slice would.
func (t Table) At(i int) Rank {
	return t.ranks[i]
}

// Promote returns the merge result rank for a pair of rank i, floored at the
// terminal rank.
func (t Table) Promote(i int) int {
	return min(i+1, t.Terminal())
}

// Ranks returns a copy of all ranks.
func (t Table) Ranks() []Rank {
	out := make([]Rank, len(t.ranks))
	copy(out, t.ranks)
	return out
}
