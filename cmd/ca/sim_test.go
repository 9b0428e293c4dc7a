package main

import (
	"path/filepath"
	"testing"

	"bitlife/internal/app"
	"bitlife/pkg/codec"
	"bitlife/pkg/core"
	"bitlife/pkg/sims/life"
)

func TestBuildSimUnknownName(t *testing.T) {
	cfg := app.NewConfig()
	cfg.Sim = "nope"
	sim, err := buildSim(cfg)
	if err == nil || sim != nil {
		t.Fatalf("sim=%v err=%v, expected an error for an unknown sim", sim, err)
	}
}

func TestBuildSimFromSnapshot(t *testing.T) {
	g, _ := core.NewBitGrid(5, 11)
	life.PlaceCells(g, 2, 4, life.Blinker)
	path := filepath.Join(t.TempDir(), "start.bin")
	if err := codec.Save(path, g); err != nil {
		t.Fatal(err)
	}

	cfg := app.NewConfig()
	cfg.Load = path
	sim, err := buildSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := sim.Size(); got.W != 11 || got.H != 5 {
		t.Fatalf("size=%+v, expected 11x5", got)
	}
	if _, err := buildSim(&app.Config{Load: path + ".missing"}); err == nil {
		t.Fatal("missing snapshot should fail")
	}
}
