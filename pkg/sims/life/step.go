package life

import (
	"runtime"

	"bitlife/pkg/core"

	"golang.org/x/sync/errgroup"
)

// StepSerial writes the successor of cur into next, visiting cells in
// row-major order. cur is only read.
func StepSerial(cur, next *core.BitGrid) {
	mustMatch(cur, next)
	rows, cols := cur.Rows(), cur.Columns()
	for r := uint16(0); r < rows; r++ {
		for c := uint16(0); c < cols; c++ {
			next.Set(r, c, survives(cur, r, c))
		}
	}
}

// StepParallel writes the successor of cur into next using one task per
// (row, block). Each task owns exactly one byte of next, so tasks never
// contend; the call returns once every task has finished. workers bounds
// the number of tasks in flight; values <= 0 use GOMAXPROCS.
func StepParallel(cur, next *core.BitGrid, workers int) {
	mustMatch(cur, next)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for r := uint16(0); r < cur.Rows(); r++ {
		for b := uint16(0); b < cur.BlocksPerRow(); b++ {
			g.Go(func() error {
				next.SetBlock(r, b, nextBlock(cur, r, b))
				return nil
			})
		}
	}
	// Tasks never return an error; Wait is only the join.
	_ = g.Wait()
}

// nextBlock computes the successor of the up to 8 cells in block b of row r.
func nextBlock(cur *core.BitGrid, r, b uint16) byte {
	var out byte
	base := int(b) * 8
	for bit := 0; bit < 8; bit++ {
		c := base + bit
		if c >= int(cur.Columns()) {
			break
		}
		if survives(cur, r, uint16(c)) {
			out |= 1 << bit
		}
	}
	return out
}

// survives applies B3/S23 to (r, c). Neighbors past the grid edge count as
// dead; nothing wraps.
func survives(cur *core.BitGrid, r, c uint16) bool {
	alive := cur.IsAlive(r, c)
	n := neighbors(cur, int(r), int(c))
	if alive {
		return n == 2 || n == 3
	}
	return n == 3
}

func neighbors(cur *core.BitGrid, r, c int) int {
	r0, r1 := max(r-1, 0), min(r+1, int(cur.Rows())-1)
	c0, c1 := max(c-1, 0), min(c+1, int(cur.Columns())-1)
	n := 0
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			if y == r && x == c {
				continue
			}
			if cur.IsAlive(uint16(y), uint16(x)) {
				n++
			}
		}
	}
	return n
}

func mustMatch(cur, next *core.BitGrid) {
	if !cur.SameSize(next) {
		panic("life: current and next grids differ in size")
	}
}
