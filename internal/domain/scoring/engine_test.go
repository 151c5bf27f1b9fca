package scoring

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func preset(t *testing.T, name string) scoringconfig.Config {
	t.Helper()
	cfg, ok := scoringconfig.Preset(name)
	if !ok {
		t.Fatalf("missing preset %s", name)
	}
	return cfg
}

func TestScore_RushingReceivingLine(t *testing.T) {
	t.Parallel()

	stats := projection.Stats{
		RushYds:    dec("152"),
		RushTDs:    dec("1"),
		Receptions: dec("5"),
		RecYds:     dec("39"),
		RecTDs:     dec("0"),
	}

	ppr, err := Score(stats, preset(t, scoringconfig.NamePPR))
	if err != nil {
		t.Fatalf("score ppr: %v", err)
	}
	got := ppr.Rounded()
	if got.Rushing.StringFixedBank(2) != "21.20" {
		t.Fatalf("rushing=%s want 21.20", got.Rushing.StringFixedBank(2))
	}
	if got.Receiving.StringFixedBank(2) != "8.90" {
		t.Fatalf("receiving=%s want 8.90", got.Receiving.StringFixedBank(2))
	}
	if got.Total.StringFixedBank(2) != "30.10" {
		t.Fatalf("total=%s want 30.10", got.Total.StringFixedBank(2))
	}

	std, err := Score(stats, preset(t, scoringconfig.NameStandard))
	if err != nil {
		t.Fatalf("score standard: %v", err)
	}
	if s := std.Rounded().Total.StringFixedBank(2); s != "25.10" {
		t.Fatalf("standard total=%s want 25.10", s)
	}

	half, err := Score(stats, preset(t, scoringconfig.NameHalfPPR))
	if err != nil {
		t.Fatalf("score half-ppr: %v", err)
	}
	if s := half.Rounded().Total.StringFixedBank(2); s != "27.60" {
		t.Fatalf("half-ppr total=%s want 27.60", s)
	}
}

func TestScore_UnsetStatsAreZero(t *testing.T) {
	t.Parallel()

	res, err := Score(projection.Stats{RushYds: dec("40")}, preset(t, scoringconfig.NamePPR))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !res.Passing.IsZero() || !res.Receiving.IsZero() || !res.Fumbles.IsZero() {
		t.Fatalf("expected zero categories, got %+v", res)
	}
	if !res.Total.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("total=%s want 4", res.Total)
	}
}

func TestScore_PassingAndFumbles(t *testing.T) {
	t.Parallel()

	stats := projection.Stats{
		PassYds:  dec("312"),
		PassTDs:  dec("3"),
		PassInts: dec("1"),
		Fumbles:  dec("1"),
	}
	res, err := Score(stats, preset(t, scoringconfig.NamePPR))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	// 312/25 = 12.48, +12 TDs, -2 INT, -2 fumble
	if !res.Passing.Equal(decimal.RequireFromString("22.48")) {
		t.Fatalf("passing=%s", res.Passing)
	}
	if !res.Fumbles.Equal(decimal.NewFromInt(-2)) {
		t.Fatalf("fumbles=%s", res.Fumbles)
	}
	if res.Rounded().Total.StringFixedBank(2) != "20.48" {
		t.Fatalf("total=%s", res.Total)
	}
}

func TestScore_ZeroDivisorFails(t *testing.T) {
	t.Parallel()

	cfg := preset(t, scoringconfig.NamePPR)
	cfg.RushYdsPerPoint = decimal.Zero

	_, err := Score(projection.Stats{RushYds: dec("100")}, cfg)
	if !errors.Is(err, scoringconfig.ErrInvalidScoringConfig) {
		t.Fatalf("expected ErrInvalidScoringConfig, got %v", err)
	}

	// Fails even when the stat that would be divided is unset.
	_, err = Score(projection.Stats{}, cfg)
	if !errors.Is(err, scoringconfig.ErrInvalidScoringConfig) {
		t.Fatalf("expected ErrInvalidScoringConfig for empty stats, got %v", err)
	}
}

func TestResult_RoundedUsesHalfEven(t *testing.T) {
	t.Parallel()

	r := Result{Total: decimal.RequireFromString("10.125"), Passing: decimal.RequireFromString("10.135")}
	got := r.Rounded()
	if got.Total.String() != "10.12" {
		t.Fatalf("total=%s want 10.12", got.Total)
	}
	if got.Passing.String() != "10.14" {
		t.Fatalf("passing=%s want 10.14", got.Passing)
	}
}
