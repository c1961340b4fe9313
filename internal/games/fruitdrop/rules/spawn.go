package rules

import "math/rand"

// DefaultSpawnWeights favors the smallest fruit.
var DefaultSpawnWeights = []int{32, 28, 22, 12, 6}

// Spawner draws the next droppable rank from a fixed weighted distribution
// over the lowest len(weights) ranks.
type Spawner struct {
	weights []int
	total   int
	rng     *rand.Rand
}

// NewSpawner creates a spawner. Weights are assumed validated (positive).
func NewSpawner(weights []int, rng *rand.Rand) *Spawner {
	w := make([]int, len(weights))
	copy(w, weights)

	total := 0
	for _, v := range w {
		total += v
	}
	return &Spawner{weights: w, total: total, rng: rng}
}

// Next returns a rank index in [0, len(weights)).
func (s *Spawner) Next() int {
	r := s.rng.Float64() * float64(s.total)
	for i, w := range s.weights {
		r -= float64(w)
		if r <= 0 {
			return i
		}
	}
	return 0
}

// Probability returns the normalized weight of rank i, or 0 when i is not
// drawable.
func (s *Spawner) Probability(i int) float64 {
	if i < 0 || i >= len(s.weights) || s.total == 0 {
		return 0
	}
	return float64(s.weights[i]) / float64(s.total)
}
