package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Byte returns a uniformly random byte.
func (r *RNG) Byte() byte {
	return byte(r.r.IntN(256))
}

// FillBlocks writes a random byte into every block of g. Padding bits are
// masked by SetBlock.
func (r *RNG) FillBlocks(g *BitGrid) {
	for row := uint16(0); row < g.Rows(); row++ {
		for b := uint16(0); b < g.BlocksPerRow(); b++ {
			g.SetBlock(row, b, r.Byte())
		}
	}
}
