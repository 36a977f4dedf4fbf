package pricing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Speed tier keys.
const (
	Economy  = "economy"
	Standard = "standard"
	Express  = "express"
)

// Zone is one step of the per-km rate table. A zone with a FlatFee charges
// that amount regardless of distance.
type Zone struct {
	Label       string  `json:"label" yaml:"label"`
	MaxDistance int     `json:"maxDistance" yaml:"maxDistance"`
	RatePerKm   float64 `json:"ratePerKm" yaml:"ratePerKm"`
	FlatFee     int64   `json:"flatFee,omitempty" yaml:"flatFee"`
}

// SpeedOption describes a delivery speed tier.
type SpeedOption struct {
	Key            string  `json:"key" yaml:"key"`
	DisplayName    string  `json:"displayName" yaml:"displayName"`
	CostMultiplier float64 `json:"costMultiplier" yaml:"costMultiplier"`
	MinDays        int     `json:"minDays" yaml:"minDays"`
	MaxDays        int     `json:"maxDays" yaml:"maxDays"`
	IsDefault      bool    `json:"isDefault" yaml:"isDefault"`
}

// TimeBand maps a distance ceiling to the standard-tier day count.
type TimeBand struct {
	Label        string `json:"label" yaml:"label"`
	MaxDistance  int    `json:"maxDistance" yaml:"maxDistance"`
	StandardDays int    `json:"standardDays" yaml:"standardDays"`
}

// Config is the pricing and timing policy. Treat a Config as immutable once
// handed to an engine.
type Config struct {
	BaseRatePerKm         float64       `json:"baseRatePerKm" yaml:"baseRatePerKm"`
	MinimumFee            int64         `json:"minimumFee" yaml:"minimumFee"`
	FreeShippingThreshold float64       `json:"freeShippingThreshold" yaml:"freeShippingThreshold"`
	Zones                 []Zone        `json:"zones" yaml:"zones"`
	SpeedOptions          []SpeedOption `json:"speedOptions" yaml:"speedOptions"`
	TimeBands             []TimeBand    `json:"timeBands" yaml:"timeBands"`
}

// Default returns the production pricing policy.
func Default() Config {
	return Config{
		BaseRatePerKm:         6,
		MinimumFee:            1500,
		FreeShippingThreshold: 50000,
		Zones: []Zone{
			{Label: "Lagos", MaxDistance: 50, FlatFee: 1500},
			{Label: "South West", MaxDistance: 250, RatePerKm: 8},
			{Label: "South & Middle Belt", MaxDistance: 600, RatePerKm: 6},
			{Label: "North Central", MaxDistance: 900, RatePerKm: 5},
			{Label: "Far North", MaxDistance: 1500, RatePerKm: 4},
		},
		SpeedOptions: []SpeedOption{
			{Key: Economy, DisplayName: "Economy Delivery", CostMultiplier: 0.7, MinDays: 5, MaxDays: 7},
			{Key: Standard, DisplayName: "Standard Delivery", CostMultiplier: 1.0, MinDays: 3, MaxDays: 5, IsDefault: true},
			{Key: Express, DisplayName: "Express Delivery", CostMultiplier: 1.8, MinDays: 1, MaxDays: 2},
		},
		TimeBands: []TimeBand{
			{Label: "Lagos", MaxDistance: 50, StandardDays: 1},
			{Label: "South West", MaxDistance: 250, StandardDays: 2},
			{Label: "South & Middle Belt", MaxDistance: 600, StandardDays: 3},
			{Label: "North Central", MaxDistance: 900, StandardDays: 4},
			{Label: "Far North", MaxDistance: 1500, StandardDays: 5},
		},
	}
}

// Load reads a YAML file whose fields override Default. Lists in the file
// replace the default lists entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading pricing file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing pricing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.Zones = append([]Zone(nil), c.Zones...)
	out.SpeedOptions = append([]SpeedOption(nil), c.SpeedOptions...)
	out.TimeBands = append([]TimeBand(nil), c.TimeBands...)
	return out
}

// Validate checks the invariants the engine relies on.
func (c Config) Validate() error {
	if c.MinimumFee < 0 {
		return errors.New("pricing: minimumFee must not be negative")
	}
	if c.FreeShippingThreshold < 0 {
		return errors.New("pricing: freeShippingThreshold must not be negative")
	}
	if len(c.Zones) == 0 && c.BaseRatePerKm <= 0 {
		return errors.New("pricing: need zones or a positive baseRatePerKm")
	}
	prev := -1
	for _, z := range c.Zones {
		if z.MaxDistance <= prev {
			return fmt.Errorf("pricing: zone %q ceiling %d is not ascending", z.Label, z.MaxDistance)
		}
		if z.RatePerKm < 0 || z.FlatFee < 0 {
			return fmt.Errorf("pricing: zone %q has a negative rate", z.Label)
		}
		prev = z.MaxDistance
	}
	if len(c.TimeBands) == 0 {
		return errors.New("pricing: no time bands")
	}
	prev = -1
	for _, b := range c.TimeBands {
		if b.MaxDistance <= prev {
			return fmt.Errorf("pricing: time band %q ceiling %d is not ascending", b.Label, b.MaxDistance)
		}
		if b.StandardDays < 1 {
			return fmt.Errorf("pricing: time band %q needs at least one day", b.Label)
		}
		prev = b.MaxDistance
	}
	if len(c.SpeedOptions) == 0 {
		return errors.New("pricing: no speed options")
	}
	defaults := 0
	keys := make(map[string]struct{}, len(c.SpeedOptions))
	for _, o := range c.SpeedOptions {
		k := normalizeKey(o.Key)
		if k == "" {
			return errors.New("pricing: speed option with empty key")
		}
		if _, dup := keys[k]; dup {
			return fmt.Errorf("pricing: duplicate speed option %q", o.Key)
		}
		keys[k] = struct{}{}
		if o.CostMultiplier <= 0 {
			return fmt.Errorf("pricing: speed option %q needs a positive multiplier", o.Key)
		}
		if o.MinDays > o.MaxDays {
			return fmt.Errorf("pricing: speed option %q has minDays > maxDays", o.Key)
		}
		if o.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("pricing: expected exactly one default speed option, got %d", defaults)
	}
	return nil
}

// ZoneFor returns the first zone whose ceiling covers distance, or the last
// zone when distance is beyond every ceiling. ok is false with no zones.
func (c Config) ZoneFor(distance int) (Zone, bool) {
	if len(c.Zones) == 0 {
		return Zone{}, false
	}
	for _, z := range c.Zones {
		if distance <= z.MaxDistance {
			return z, true
		}
	}
	return c.Zones[len(c.Zones)-1], true
}

// BandFor returns the first time band covering distance, falling back to the
// farthest band.
func (c Config) BandFor(distance int) TimeBand {
	for _, b := range c.TimeBands {
		if distance <= b.MaxDistance {
			return b
		}
	}
	return c.TimeBands[len(c.TimeBands)-1]
}

// Tier resolves a speed option by key; unknown keys yield the default tier.
func (c Config) Tier(key string) SpeedOption {
	k := normalizeKey(key)
	for _, o := range c.SpeedOptions {
		if normalizeKey(o.Key) == k {
			return o
		}
	}
	return c.DefaultTier()
}

// DefaultTier returns the option flagged IsDefault.
func (c Config) DefaultTier() SpeedOption {
	for _, o := range c.SpeedOptions {
		if o.IsDefault {
			return o
		}
	}
	return c.SpeedOptions[0]
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
