package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sort"
	"sync"
	"time"

	"bitlife/pkg/codec"
	"bitlife/pkg/core"
	"bitlife/pkg/sims/life"
)

type scenario struct {
	seed int64
}

type scenarioResult struct {
	seed        int64
	serial      time.Duration
	parallel    time.Duration
	population  int
	diverged    bool
	divergedGen int
	final       *core.BitGrid
}

func main() {
	rows := flag.Uint("rows", 512, "grid rows")
	cols := flag.Uint("cols", 512, "grid columns")
	gens := flag.Int("gens", 64, "generations to simulate per scenario")
	runs := flag.Int("runs", 4, "number of seeds to simulate")
	seed := flag.Int64("seed", 5343542, "first seed; later runs use seed+1, seed+2, ...")
	pattern := flag.String("pattern", "random", "initial pattern")
	workers := flag.Int("workers", runtime.NumCPU(), "scenarios simulated concurrently")
	stepWorkers := flag.Int("step-workers", 0, "parallel stepper tasks in flight (0 = GOMAXPROCS)")
	out := flag.String("out", "", "write the first scenario's final grid here (.zst compresses)")
	load := flag.String("load", "", "start every scenario from this snapshot instead of a pattern")
	flag.Parse()

	if *rows == 0 || *rows > 0xffff || *cols == 0 || *cols > 0xffff {
		log.Fatalf("grid size %dx%d out of range 1..65535", *rows, *cols)
	}

	var start *core.BitGrid
	if *load != "" {
		g, err := codec.Load(*load)
		if err != nil {
			log.Fatal(err)
		}
		start = g
		*rows, *cols = uint(g.Rows()), uint(g.Columns())
	} else if !slices.Contains(life.Patterns(), *pattern) {
		log.Fatalf("unknown pattern %q (have %v)", *pattern, life.Patterns())
	}

	fmt.Printf("Simulating %d scenario(s) of %dx%d for %d generations (%d workers)\n", *runs, *rows, *cols, *gens, *workers)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				res, err := runScenario(uint16(*rows), uint16(*cols), *pattern, start, sc, *gens, *stepWorkers)
				if err != nil {
					log.Fatalf("seed %d: %v", sc.seed, err)
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *runs; i++ {
			jobs <- scenario{seed: *seed + int64(i)}
		}
		close(jobs)
	}()

	began := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })

	failed := false
	for _, res := range all {
		status := "match"
		if res.diverged {
			status = fmt.Sprintf("DIVERGED at generation %d", res.divergedGen)
			failed = true
		}
		speedup := 0.0
		if res.parallel > 0 {
			speedup = float64(res.serial) / float64(res.parallel)
		}
		fmt.Printf("seed=%d serial=%s parallel=%s speedup=%.2fx population=%d %s\n",
			res.seed, res.serial.Round(time.Microsecond), res.parallel.Round(time.Microsecond), speedup, res.population, status)
	}
	fmt.Printf("\nElapsed %s\n", time.Since(began).Round(time.Millisecond))

	if *out != "" && len(all) > 0 {
		if err := codec.Save(*out, all[0].final); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote seed %d to %s (%d bytes uncompressed)\n", all[0].seed, *out, codec.EncodedLen(all[0].final))
	}
	if failed {
		log.Fatal("serial and parallel steppers disagree")
	}
}

// runScenario advances a serial and a parallel buffer from the same start and
// compares their next grids after every step.
func runScenario(rows, cols uint16, pattern string, start *core.BitGrid, sc scenario, gens, stepWorkers int) (scenarioResult, error) {
	serial, err := life.NewBuffer(rows, cols)
	if err != nil {
		return scenarioResult{}, err
	}
	parallel, err := life.NewBuffer(rows, cols)
	if err != nil {
		return scenarioResult{}, err
	}
	parallel.SetMode(life.ModeParallel)
	parallel.SetWorkers(stepWorkers)

	for _, b := range []*life.Buffer{serial, parallel} {
		if start != nil {
			if err := b.Current().CopyFrom(start); err != nil {
				return scenarioResult{}, err
			}
			continue
		}
		if err := life.Seed(b.Current(), pattern, sc.seed); err != nil {
			return scenarioResult{}, err
		}
	}

	res := scenarioResult{seed: sc.seed}
	for gen := 0; gen < gens; gen++ {
		t0 := time.Now()
		serial.Step()
		res.serial += time.Since(t0)

		t0 = time.Now()
		parallel.Step()
		res.parallel += time.Since(t0)

		if !res.diverged && !serial.Next().Equal(parallel.Next()) {
			res.diverged = true
			res.divergedGen = gen + 1
		}
		serial.Commit()
		parallel.Commit()
	}
	res.population = serial.Current().Population()
	res.final = serial.Current()
	return res, nil
}
