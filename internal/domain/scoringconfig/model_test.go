package scoringconfig

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPresets(t *testing.T) {
	t.Parallel()

	presets := Presets()
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(presets))
	}

	wantRec := map[string]string{NamePPR: "1", NameHalfPPR: "0.5", NameStandard: "0"}
	defaults := 0
	for _, cfg := range presets {
		if err := cfg.Validate(); err != nil {
			t.Fatalf("preset %s invalid: %v", cfg.Name, err)
		}
		if !cfg.RecPoints.Equal(decimal.RequireFromString(wantRec[cfg.Name])) {
			t.Fatalf("preset %s rec_points=%s", cfg.Name, cfg.RecPoints)
		}
		if cfg.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default preset, got %d", defaults)
	}

	if _, ok := Preset("half-ppr"); !ok {
		t.Fatalf("expected case-insensitive preset lookup")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg, _ := Preset(NamePPR)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero rush divisor", mutate: func(c *Config) { c.RushYdsPerPoint = decimal.Zero }},
		{name: "negative pass divisor", mutate: func(c *Config) { c.PassYdsPerPoint = decimal.NewFromInt(-25) }},
		{name: "zero rec divisor", mutate: func(c *Config) { c.RecYdsPerPoint = decimal.Zero }},
		{name: "positive fumble", mutate: func(c *Config) { c.FumblePoints = decimal.NewFromInt(2) }},
		{name: "positive interception", mutate: func(c *Config) { c.PassIntPoints = decimal.NewFromInt(1) }},
		{name: "blank name", mutate: func(c *Config) { c.Name = "  " }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := cfg
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidScoringConfig) {
				t.Fatalf("expected ErrInvalidScoringConfig, got %v", err)
			}
		})
	}
}
