package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fantasy-projections/internal/domain/projection"
	"github.com/riskibarqy/fantasy-projections/internal/domain/scoringconfig"
)

// PresentationPlaces is the precision used when points leave the engine.
const PresentationPlaces = 2

// Result holds unrounded category points. Round only for presentation.
type Result struct {
	Passing   decimal.Decimal
	Rushing   decimal.Decimal
	Receiving decimal.Decimal
	Fumbles   decimal.Decimal
	Total     decimal.Decimal
}

// Rounded returns every category rounded half-to-even to two places. Total
// is rounded from the unrounded sum, not re-summed from rounded parts.
func (r Result) Rounded() Result {
	return Result{
		Passing:   r.Passing.RoundBank(PresentationPlaces),
		Rushing:   r.Rushing.RoundBank(PresentationPlaces),
		Receiving: r.Receiving.RoundBank(PresentationPlaces),
		Fumbles:   r.Fumbles.RoundBank(PresentationPlaces),
		Total:     r.Total.RoundBank(PresentationPlaces),
	}
}

// Score computes fantasy points. Unset stats count as zero. It fails with
// scoringconfig.ErrInvalidScoringConfig instead of dividing by a
// non-positive yards-per-point coefficient.
func Score(stats projection.Stats, cfg scoringconfig.Config) (Result, error) {
	if err := checkDivisors(cfg); err != nil {
		return Result{}, err
	}

	passing := stats.OrZero(projection.StatPassYds).Div(cfg.PassYdsPerPoint).
		Add(stats.OrZero(projection.StatPassTDs).Mul(cfg.PassTDPoints)).
		Add(stats.OrZero(projection.StatPassInts).Mul(cfg.PassIntPoints))

	rushing := stats.OrZero(projection.StatRushYds).Div(cfg.RushYdsPerPoint).
		Add(stats.OrZero(projection.StatRushTDs).Mul(cfg.RushTDPoints))

	receiving := stats.OrZero(projection.StatReceptions).Mul(cfg.RecPoints).
		Add(stats.OrZero(projection.StatRecYds).Div(cfg.RecYdsPerPoint)).
		Add(stats.OrZero(projection.StatRecTDs).Mul(cfg.RecTDPoints))

	fumbles := stats.OrZero(projection.StatFumbles).Mul(cfg.FumblePoints)

	return Result{
		Passing:   passing,
		Rushing:   rushing,
		Receiving: receiving,
		Fumbles:   fumbles,
		Total:     passing.Add(rushing).Add(receiving).Add(fumbles),
	}, nil
}

func checkDivisors(cfg scoringconfig.Config) error {
	if !cfg.PassYdsPerPoint.IsPositive() {
		return fmt.Errorf("%w: %s pass_yds_per_point is %s", scoringconfig.ErrInvalidScoringConfig, cfg.Name, cfg.PassYdsPerPoint)
	}
	if !cfg.RushYdsPerPoint.IsPositive() {
		return fmt.Errorf("%w: %s rush_yds_per_point is %s", scoringconfig.ErrInvalidScoringConfig, cfg.Name, cfg.RushYdsPerPoint)
	}
	if !cfg.RecYdsPerPoint.IsPositive() {
		return fmt.Errorf("%w: %s rec_yds_per_point is %s", scoringconfig.ErrInvalidScoringConfig, cfg.Name, cfg.RecYdsPerPoint)
	}
	return nil
}
