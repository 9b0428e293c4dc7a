package life

import (
	"errors"
	"fmt"
	"sort"

	"bitlife/pkg/core"

	"github.com/aquilax/go-perlin"
)

// ErrUnknownPattern is returned by Seed for names missing from the pattern table.
var ErrUnknownPattern = errors.New("life: unknown pattern")

// Glider cells relative to the pattern origin, travelling towards +row/+column.
var Glider = [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}

// Blinker cells in their horizontal phase.
var Blinker = [][2]int{{0, 0}, {0, 1}, {0, 2}}

// gliderBlocks is the glider as raw block values for block column 0.
var gliderBlocks = []byte{0x02, 0x04, 0x07}

// Perlin parameters for the noise pattern.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOct   = 3
	noiseScale = 0.12
)

type seeder func(g *core.BitGrid, seed int64)

var patterns = map[string]seeder{
	"empty": func(*core.BitGrid, int64) {},
	"glider": func(g *core.BitGrid, _ int64) {
		PlaceBlocks(g, 0, 0, gliderBlocks...)
	},
	"gliders": seedGliderFleet,
	"blinker": func(g *core.BitGrid, _ int64) {
		PlaceCells(g, int(g.Rows())/2, int(g.Columns())/2-1, Blinker)
	},
	"random": func(g *core.BitGrid, seed int64) {
		core.NewRNG(seed).FillBlocks(g)
	},
	"noise": seedNoise,
}

// Patterns lists the names accepted by Seed.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seed clears g and writes the named pattern into it.
func Seed(g *core.BitGrid, name string, seed int64) error {
	fn, ok := patterns[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	g.Clear()
	fn(g, seed)
	return nil
}

// PlaceBlocks writes whole block values into block column `block`, one value
// per consecutive row starting at `row`. Blocks are replaced outright.
func PlaceBlocks(g *core.BitGrid, row, block uint16, blocks ...byte) {
	for i, v := range blocks {
		g.SetBlock(row+uint16(i), block, v)
	}
}

// PlaceCells marks cells alive at the given offsets from (row, col). Cells
// that land outside the grid are dropped.
func PlaceCells(g *core.BitGrid, row, col int, cells [][2]int) {
	for _, c := range cells {
		r, x := row+c[0], col+c[1]
		if r < 0 || x < 0 || r > 0xffff || x > 0xffff {
			continue
		}
		g.SetAlive(uint16(r), uint16(x))
	}
}

// seedGliderFleet drops gliders down the left edge and along the top, one
// every ten rows and every two blocks. The top gliders sit in bits 5-7, so a
// padded last block too narrow to hold them is skipped.
func seedGliderFleet(g *core.BitGrid, _ int64) {
	for r := 0; r+len(gliderBlocks) <= int(g.Rows()); r += 10 {
		PlaceBlocks(g, uint16(r), 0, gliderBlocks...)
	}
	for b := 1; b < int(g.BlocksPerRow()); b += 2 {
		if b == int(g.BlocksPerRow())-1 && g.PaddingMask()&0xe0 != 0xe0 {
			break
		}
		for i, v := range gliderBlocks {
			g.SetBlock(uint16(i), uint16(b), v<<5)
		}
	}
}

func seedNoise(g *core.BitGrid, seed int64) {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOct, seed)
	for r := uint16(0); r < g.Rows(); r++ {
		for c := uint16(0); c < g.Columns(); c++ {
			if p.Noise2D(float64(c)*noiseScale, float64(r)*noiseScale) > 0 {
				g.SetAlive(r, c)
			}
		}
	}
}
