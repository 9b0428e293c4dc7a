package life

import "bitlife/pkg/core"

// Mode selects the stepping algorithm used by Buffer.Step.
type Mode uint8

const (
	// ModeSerial steps the grid on the calling goroutine.
	ModeSerial Mode = iota
	// ModeParallel fans the step out over (row, block) tasks.
	ModeParallel
)

// String returns the mode name used by flags and the HUD.
func (m Mode) String() string {
	if m == ModeParallel {
		return "parallel"
	}
	return "serial"
}

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "serial", "single":
		return ModeSerial, true
	case "parallel", "multi":
		return ModeParallel, true
	}
	return ModeSerial, false
}

// Buffer owns the current generation and the scratch grid its successor is
// computed into. Only Current is externally meaningful. A Buffer must not be
// mutated from several goroutines at once.
type Buffer struct {
	cur, nxt *core.BitGrid
	mode     Mode
	workers  int
	gen      uint64
}

// NewBuffer allocates both generations with the given dimensions.
func NewBuffer(rows, columns uint16) (*Buffer, error) {
	cur, err := core.NewBitGrid(rows, columns)
	if err != nil {
		return nil, err
	}
	nxt, err := core.NewBitGrid(rows, columns)
	if err != nil {
		return nil, err
	}
	return &Buffer{cur: cur, nxt: nxt}, nil
}

// FromGrid wraps an existing grid as the current generation.
func FromGrid(g *core.BitGrid) (*Buffer, error) {
	if g == nil {
		return nil, core.ErrInvalidSize
	}
	nxt, err := core.NewBitGrid(g.Rows(), g.Columns())
	if err != nil {
		return nil, err
	}
	return &Buffer{cur: g, nxt: nxt}, nil
}

// Current returns the visible generation.
func (b *Buffer) Current() *core.BitGrid { return b.cur }

// Next returns the scratch generation filled by the last Step.
func (b *Buffer) Next() *core.BitGrid { return b.nxt }

// Mode returns the stepping mode used by Step.
func (b *Buffer) Mode() Mode { return b.mode }

// SetMode selects the stepping algorithm used by Step.
func (b *Buffer) SetMode(m Mode) { b.mode = m }

// SetWorkers bounds parallel tasks in flight; n <= 0 uses GOMAXPROCS.
func (b *Buffer) SetWorkers(n int) { b.workers = n }

// Generation returns the number of commits since creation or Reset.
func (b *Buffer) Generation() uint64 { return b.gen }

// Step computes the next generation from the current one.
func (b *Buffer) Step() {
	if b.mode == ModeParallel {
		b.StepParallel()
		return
	}
	b.StepSerial()
}

// StepSerial computes the next generation on the calling goroutine.
func (b *Buffer) StepSerial() { StepSerial(b.cur, b.nxt) }

// StepParallel computes the next generation with one task per block.
func (b *Buffer) StepParallel() { StepParallel(b.cur, b.nxt, b.workers) }

// Commit copies the next generation into the current one. Afterwards both
// grids hold the same cells.
func (b *Buffer) Commit() {
	copy(b.cur.Blocks(), b.nxt.Blocks())
	b.gen++
}

// Advance runs n rounds of Step followed by Commit.
func (b *Buffer) Advance(n int) {
	for i := 0; i < n; i++ {
		b.Step()
		b.Commit()
	}
}

// Reset kills every cell in the current generation. Next is left alone
// until the following Step overwrites it.
func (b *Buffer) Reset() {
	b.cur.Clear()
	b.gen = 0
}
