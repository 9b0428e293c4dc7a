package life

import "strconv"

// Config holds parameters for the Life simulation.
type Config struct {
	Rows    uint16
	Columns uint16
	Pattern string
	Mode    Mode
	Workers int
	// Speed is the number of generations advanced per Step.
	Speed int
	Seed  int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Rows: 128, Columns: 128, Pattern: "random", Mode: ModeSerial, Speed: 1, Seed: 65535}
}

// FromMap populates a Config from a string map. Unparseable or out-of-range
// values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := lookup(cfg, "rows", "h"); ok {
		if parsed, err := strconv.ParseUint(v, 10, 16); err == nil && parsed > 0 {
			c.Rows = uint16(parsed)
		}
	}
	if v, ok := lookup(cfg, "cols", "w"); ok {
		if parsed, err := strconv.ParseUint(v, 10, 16); err == nil && parsed > 0 {
			c.Columns = uint16(parsed)
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if _, known := patterns[v]; known {
			c.Pattern = v
		}
	}
	if v, ok := cfg["mode"]; ok {
		if m, ok := ParseMode(v); ok {
			c.Mode = m
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Speed = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

func lookup(cfg map[string]string, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := cfg[k]; ok {
			return v, true
		}
	}
	return "", false
}
