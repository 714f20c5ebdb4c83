package responses

import "math/rand/v2"

// Rand is the random source used for response, question, and game-target
// selection. Abstracted so tests can script the sequence.
type Rand interface {
	// IntN returns a uniform random int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// StdRand returns the production source backed by math/rand/v2.
func StdRand() Rand { return stdRand{} }

type stdRand struct{}

func (stdRand) IntN(n int) int { return rand.IntN(n) }
