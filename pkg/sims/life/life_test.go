package life

import (
	"errors"
	"testing"

	"bitlife/pkg/core"
)

func TestBlinkerOscillation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = 5, 5
	cfg.Pattern = "empty"
	life, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	life.Reset(0)

	w := life.Size().W
	set := func(row, col uint16) { life.Grid().SetAlive(row, col) }
	set(2, 1)
	set(2, 2)
	set(2, 3)

	life.Step()
	cells := life.Cells()

	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			idx := y*w + x
			alive := cells[idx] == 1
			_, shouldBeAlive := expects[[2]int{y, x}]
			if shouldBeAlive != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", y, x, alive, shouldBeAlive)
			}
		}
	}

	life.Step()
	cells = life.Cells()

	expects = map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			idx := y*w + x
			alive := cells[idx] == 1
			_, shouldBeAlive := expects[[2]int{y, x}]
			if shouldBeAlive != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", y, x, alive, shouldBeAlive)
			}
		}
	}
	if life.Generation() != 2 {
		t.Fatalf("generation=%d, expected 2", life.Generation())
	}
}

func TestSpeedAdvancesSeveralGenerations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = 12, 12
	cfg.Pattern = "glider"
	cfg.Speed = 4
	life, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	life.Reset(0)
	start := liveSet(life.Grid())

	life.Step()
	if life.Generation() != 4 {
		t.Fatalf("generation=%d, expected 4", life.Generation())
	}
	assertTranslated(t, start, liveSet(life.Grid()), 1, 1)
}

func TestResetReseedsDeterministically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = 20, 19
	life, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	life.Reset(0)
	first := life.Grid().Clone()
	life.Step()
	life.Reset(0)
	if !first.Equal(life.Grid()) {
		t.Fatal("Reset with config seed not deterministic")
	}
	if life.Generation() != 0 {
		t.Fatal("Reset should rewind the generation counter")
	}
	life.Reset(1234)
	if first.Equal(life.Grid()) {
		t.Fatal("different seeds should produce different boards")
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Sims()["life"]
	if !ok {
		t.Fatal("life should register itself")
	}
	sim, err := factory(map[string]string{"rows": "7", "cols": "9"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Name() != "life" {
		t.Fatalf("name=%q", sim.Name())
	}
	if got := sim.Size(); got.W != 9 || got.H != 7 {
		t.Fatalf("size=%+v, expected 9x7", got)
	}
	if len(sim.Cells()) != 63 {
		t.Fatalf("cells=%d, expected 63", len(sim.Cells()))
	}
}

func TestNewFromGridUsesGridDimensions(t *testing.T) {
	g, err := core.NewBitGrid(6, 10)
	if err != nil {
		t.Fatal(err)
	}
	PlaceCells(g, 2, 3, Blinker)
	life, err := NewFromGrid(DefaultConfig(), g)
	if err != nil {
		t.Fatal(err)
	}
	if got := life.Size(); got.W != 10 || got.H != 6 {
		t.Fatalf("size=%+v, expected 10x6", got)
	}
	if life.Population() != 3 {
		t.Fatalf("population=%d, expected 3", life.Population())
	}
	life.Step()
	if !life.Grid().IsAlive(1, 4) || !life.Grid().IsAlive(3, 4) {
		t.Fatal("loaded blinker should flip to vertical")
	}
}

func TestNewRejectsUnknownPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = "glidr"
	if life, err := New(cfg); !errors.Is(err, ErrUnknownPattern) || life != nil {
		t.Fatalf("New: life=%v err=%v, expected ErrUnknownPattern", life, err)
	}
	g, _ := core.NewBitGrid(4, 4)
	if life, err := NewFromGrid(cfg, g); !errors.Is(err, ErrUnknownPattern) || life != nil {
		t.Fatalf("NewFromGrid: life=%v err=%v, expected ErrUnknownPattern", life, err)
	}
}

func liveSet(g *core.BitGrid) map[[2]int]bool {
	out := map[[2]int]bool{}
	for r := uint16(0); r < g.Rows(); r++ {
		for c := uint16(0); c < g.Columns(); c++ {
			if g.IsAlive(r, c) {
				out[[2]int{int(r), int(c)}] = true
			}
		}
	}
	return out
}

func assertTranslated(t *testing.T, from, to map[[2]int]bool, dr, dc int) {
	t.Helper()
	if len(from) != len(to) {
		t.Fatalf("live cells %d -> %d, expected same count", len(from), len(to))
	}
	for cell := range from {
		moved := [2]int{cell[0] + dr, cell[1] + dc}
		if !to[moved] {
			t.Fatalf("cell %v expected at %v after translation", cell, moved)
		}
	}
}

func TestToggleModeKeepsResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = 16, 21
	serial, _ := New(cfg)
	toggled, _ := New(cfg)
	serial.Reset(0)
	toggled.Reset(0)

	toggled.ToggleMode()
	if toggled.ModeName() != "parallel" {
		t.Fatalf("mode=%s, expected parallel", toggled.ModeName())
	}
	for i := 0; i < 5; i++ {
		serial.Step()
		toggled.Step()
	}
	if !serial.Grid().Equal(toggled.Grid()) {
		t.Fatal("switching steppers must not change the outcome")
	}
	toggled.ToggleMode()
	if toggled.ModeName() != "serial" {
		t.Fatalf("mode=%s, expected serial", toggled.ModeName())
	}
}
