package scoringconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidScoringConfig marks degenerate coefficients, such as a zero
// yards-per-point divisor.
var ErrInvalidScoringConfig = errors.New("invalid scoring config")

const (
	NamePPR      = "PPR"
	NameHalfPPR  = "Half-PPR"
	NameStandard = "Standard"

	maxNameLength = 64
)

// Config is a named coefficient set that turns raw stats into points.
type Config struct {
	ID          string
	Name        string
	Description string

	PassYdsPerPoint decimal.Decimal
	PassTDPoints    decimal.Decimal
	PassIntPoints   decimal.Decimal

	RushYdsPerPoint decimal.Decimal
	RushTDPoints    decimal.Decimal

	RecYdsPerPoint decimal.Decimal
	RecTDPoints    decimal.Decimal
	RecPoints      decimal.Decimal

	FumblePoints decimal.Decimal

	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Config) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScoringConfig)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidScoringConfig, maxNameLength)
	}

	divisors := []struct {
		field string
		value decimal.Decimal
	}{
		{field: "pass_yds_per_point", value: c.PassYdsPerPoint},
		{field: "rush_yds_per_point", value: c.RushYdsPerPoint},
		{field: "rec_yds_per_point", value: c.RecYdsPerPoint},
	}
	for _, d := range divisors {
		if !d.value.IsPositive() {
			return fmt.Errorf("%w: %s must be greater than zero, got %s", ErrInvalidScoringConfig, d.field, d.value)
		}
	}

	if c.PassIntPoints.IsPositive() {
		return fmt.Errorf("%w: pass_int_points must not be positive, got %s", ErrInvalidScoringConfig, c.PassIntPoints)
	}
	if c.FumblePoints.IsPositive() {
		return fmt.Errorf("%w: fumble_points must not be positive, got %s", ErrInvalidScoringConfig, c.FumblePoints)
	}
	return nil
}

func base(name, description string, recPoints string, isDefault bool) Config {
	return Config{
		Name:            name,
		Description:     description,
		PassYdsPerPoint: decimal.RequireFromString("25"),
		PassTDPoints:    decimal.RequireFromString("4"),
		PassIntPoints:   decimal.RequireFromString("-2"),
		RushYdsPerPoint: decimal.RequireFromString("10"),
		RushTDPoints:    decimal.RequireFromString("6"),
		RecYdsPerPoint:  decimal.RequireFromString("10"),
		RecTDPoints:     decimal.RequireFromString("6"),
		RecPoints:       decimal.RequireFromString(recPoints),
		FumblePoints:    decimal.RequireFromString("-2"),
		IsDefault:       isDefault,
	}
}

// Presets returns the three standard league formats. PPR is the default.
func Presets() []Config {
	return []Config{
		base(NamePPR, "Point Per Reception", "1", true),
		base(NameHalfPPR, "Half Point Per Reception", "0.5", false),
		base(NameStandard, "Standard (No PPR)", "0", false),
	}
}

func Preset(name string) (Config, bool) {
	for _, cfg := range Presets() {
		if strings.EqualFold(cfg.Name, strings.TrimSpace(name)) {
			return cfg, true
		}
	}
	return Config{}, false
}
