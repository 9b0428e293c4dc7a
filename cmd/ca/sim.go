package main

import (
	"fmt"
	"log"

	"bitlife/internal/app"
	"bitlife/pkg/codec"
	"bitlife/pkg/core"
	"bitlife/pkg/sims/life"
)

// buildSim resolves the simulation named by cfg, or the snapshot it loads.
func buildSim(cfg *app.Config) (core.Sim, error) {
	if cfg.Load != "" {
		grid, err := codec.Load(cfg.Load)
		if err != nil {
			return nil, err
		}
		log.Printf("loaded %s: %dx%d, %d live cells", cfg.Load, grid.Rows(), grid.Columns(), grid.Population())
		sim, err := life.NewFromGrid(life.FromMap(cfg.SimOptions()), grid)
		if err != nil {
			return nil, err
		}
		return sim, nil
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", cfg.Sim)
	}
	sim, err := factory(cfg.SimOptions())
	if err != nil {
		return nil, err
	}
	sim.Reset(cfg.Seed)
	return sim, nil
}
