package engine

// RNG is the randomness source used by generation, refill and shuffling.
// *math/rand.Rand satisfies it; tests substitute fixed sequences.
type RNG interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// Shuffle applies a Fisher–Yates permutation to xs in place.
// For i = 0..n-1 it swaps xs[i] with xs[i+rng.Intn(n-i)].
func Shuffle(xs []int, rng RNG) {
	for i := 0; i < len(xs); i++ {
		j := i + rng.Intn(len(xs)-i)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
