package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"kinetic-table/pkg/hal"
)

// TableConfig describes the physical table.
type TableConfig struct {
	Rows           int     `yaml:"rows"`
	Cols           int     `yaml:"cols"`
	MinHeight      float64 `yaml:"min_height"`
	MaxHeight      float64 `yaml:"max_height"`
	MaxSpeed       float64 `yaml:"max_speed"`
	RestAtMidpoint bool    `yaml:"rest_at_midpoint"`
}

// SimConfig controls the simulation loop cadence.
type SimConfig struct {
	TPS        int `yaml:"tps"`
	MaxCatchUp int `yaml:"max_catch_up"`
}

// PatternConfig selects the pattern that feeds targets to the table.
type PatternConfig struct {
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params"`
}

// Config is the full application configuration.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	Sim     SimConfig     `yaml:"sim"`
	Pattern PatternConfig `yaml:"pattern"`
}

// DefaultConfig returns the standard 30x30 table running a wave at 60 TPS.
func DefaultConfig() Config {
	t := hal.DefaultConfig()
	return Config{
		Table: TableConfig{
			Rows:      t.Rows,
			Cols:      t.Cols,
			MinHeight: t.MinHeight,
			MaxHeight: t.MaxHeight,
			MaxSpeed:  t.MaxSpeed,
		},
		Sim: SimConfig{
			TPS:        60,
			MaxCatchUp: 5,
		},
		Pattern: PatternConfig{
			Name:   "wave",
			Params: map[string]string{},
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if c.Pattern.Params == nil {
		c.Pattern.Params = map[string]string{}
	}
	return c, nil
}

// FromMap applies key/value overrides (flag-style) on top of c. Unknown keys
// and unparsable values are ignored. Keys prefixed with "param." set pattern
// parameters.
func (c Config) FromMap(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	params := make(map[string]string, len(c.Pattern.Params))
	for k, v := range c.Pattern.Params {
		params[k] = v
	}
	c.Pattern.Params = params

	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Table.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Table.Cols = parsed
		}
	}
	if v, ok := cfg["min_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Table.MinHeight = parsed
		}
	}
	if v, ok := cfg["max_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Table.MaxHeight = parsed
		}
	}
	if v, ok := cfg["max_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Table.MaxSpeed = parsed
		}
	}
	if v, ok := cfg["rest_at_midpoint"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Table.RestAtMidpoint = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sim.TPS = parsed
		}
	}
	if v, ok := cfg["max_catch_up"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sim.MaxCatchUp = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern.Name = v
	}
	for k, v := range cfg {
		if name, ok := strings.CutPrefix(k, "param."); ok && name != "" {
			c.Pattern.Params[name] = v
		}
	}
	return c
}

// ParseOverrides splits repeated key=value flags into a map. Entries without
// '=' are reported as errors.
func ParseOverrides(kvs []string) (map[string]string, error) {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("override %q is not key=value", kv)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// HAL converts the table section into HAL construction parameters.
func (c Config) HAL() hal.Config {
	return hal.Config{
		Rows:           c.Table.Rows,
		Cols:           c.Table.Cols,
		MinHeight:      c.Table.MinHeight,
		MaxHeight:      c.Table.MaxHeight,
		MaxSpeed:       c.Table.MaxSpeed,
		RestAtMidpoint: c.Table.RestAtMidpoint,
	}
}

// Validate reports configuration the simulation cannot run with.
func (c Config) Validate() error {
	if err := c.HAL().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Sim.TPS <= 0 {
		return errors.New("sim: tps must be positive")
	}
	if c.Pattern.Name == "" {
		return errors.New("pattern: name is required")
	}
	return nil
}
