package life

import (
	"fmt"

	"bitlife/pkg/core"
)

// Life adapts a Buffer to the core.Sim contract. Each Step advances Speed
// generations; Cells expands the packed grid to one byte per cell.
type Life struct {
	cfg     Config
	buf     *Buffer
	display []uint8
}

// New returns a Life simulation for the provided configuration.
func New(cfg Config) (*Life, error) {
	if err := checkPattern(cfg.Pattern); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(cfg.Rows, cfg.Columns)
	if err != nil {
		return nil, err
	}
	return newLife(cfg, buf), nil
}

// NewFromGrid wraps a loaded grid. Dimensions come from the grid, not cfg.
func NewFromGrid(cfg Config, g *core.BitGrid) (*Life, error) {
	if err := checkPattern(cfg.Pattern); err != nil {
		return nil, err
	}
	buf, err := FromGrid(g)
	if err != nil {
		return nil, err
	}
	cfg.Rows, cfg.Columns = g.Rows(), g.Columns()
	return newLife(cfg, buf), nil
}

func checkPattern(name string) error {
	if _, ok := patterns[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return nil
}

func newLife(cfg Config, buf *Buffer) *Life {
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	buf.SetMode(cfg.Mode)
	buf.SetWorkers(cfg.Workers)
	return &Life{cfg: cfg, buf: buf, display: make([]uint8, int(cfg.Rows)*int(cfg.Columns))}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: int(l.cfg.Columns), H: int(l.cfg.Rows)} }

// Buffer exposes the generation store.
func (l *Life) Buffer() *Buffer { return l.buf }

// Grid exposes the current generation.
func (l *Life) Grid() *core.BitGrid { return l.buf.Current() }

// Generation returns the number of generations since the last Reset.
func (l *Life) Generation() uint64 { return l.buf.Generation() }

// Population counts live cells in the current generation.
func (l *Life) Population() int { return l.buf.Current().Population() }

// ModeName reports which stepper is active.
func (l *Life) ModeName() string { return l.buf.Mode().String() }

// ToggleMode switches between the serial and parallel steppers.
func (l *Life) ToggleMode() {
	if l.buf.Mode() == ModeParallel {
		l.buf.SetMode(ModeSerial)
	} else {
		l.buf.SetMode(ModeParallel)
	}
	l.cfg.Mode = l.buf.Mode()
}

// SetSpeed changes how many generations each Step advances.
func (l *Life) SetSpeed(n int) {
	if n > 0 {
		l.cfg.Speed = n
	}
}

// Speed returns the generations advanced per Step.
func (l *Life) Speed() int { return l.cfg.Speed }

// Reset reseeds the configured pattern. A zero seed uses the config seed.
func (l *Life) Reset(seed int64) {
	if seed == 0 {
		seed = l.cfg.Seed
	}
	l.buf.Reset()
	// New and NewFromGrid reject unknown patterns, so Seed cannot fail here.
	_ = Seed(l.buf.Current(), l.cfg.Pattern, seed)
}

// Step advances the simulation by Speed generations.
func (l *Life) Step() {
	l.buf.Advance(l.cfg.Speed)
}

// Cells exposes the current grid as 0/1 values in row-major order.
func (l *Life) Cells() []uint8 {
	g := l.buf.Current()
	w := int(g.Columns())
	for r := uint16(0); r < g.Rows(); r++ {
		for c := uint16(0); c < g.Columns(); c++ {
			var v uint8
			if g.IsAlive(r, c) {
				v = 1
			}
			l.display[int(r)*w+int(c)] = v
		}
	}
	return l.display
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		l, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
