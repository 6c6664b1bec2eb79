package quiz

import "math/rand"

// Sample picks up to count questions from the pool. When the pool already
// fits, it is returned unchanged so full-pool runs stay deterministic;
// otherwise a copy is uniformly shuffled and the first count are taken.
func Sample(pool []Question, count int) []Question {
	if len(pool) <= count {
		return pool
	}
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}
