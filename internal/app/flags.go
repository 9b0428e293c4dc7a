package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	GPS      int
	Seed     int64
	Rows     int
	Cols     int
	Pattern  string
	Mode     string
	Workers  int
	Speed    int
	Load     string
	Save     string
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "life",
		Scale:    4,
		TPS:      60,
		GPS:      15,
		Seed:     65535,
		Rows:     128,
		Cols:     128,
		Pattern:  "random",
		Mode:     "serial",
		Speed:    1,
		Save:     "save.bin",
		HUDWidth: 140,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.GPS, "gps", c.GPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern")
	fs.StringVar(&c.Mode, "mode", c.Mode, "stepper: serial or parallel")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel tasks in flight (0 = GOMAXPROCS)")
	fs.IntVar(&c.Speed, "speed", c.Speed, "generations per tick")
	fs.StringVar(&c.Load, "load", c.Load, "snapshot to start from (.zst is decompressed)")
	fs.StringVar(&c.Save, "save", c.Save, "snapshot path written by the save key")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// SimOptions converts the flags into the option map consumed by sim factories.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"rows":    strconv.Itoa(c.Rows),
		"cols":    strconv.Itoa(c.Cols),
		"pattern": c.Pattern,
		"mode":    c.Mode,
		"workers": strconv.Itoa(c.Workers),
		"speed":   strconv.Itoa(c.Speed),
		"seed":    strconv.FormatInt(c.Seed, 10),
	}
}
