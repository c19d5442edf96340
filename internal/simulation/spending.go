package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
)

// SpendingModel selects the behavioral curve mapping retiree age to a
// multiplier on inflation-adjusted base spending.
type SpendingModel string

const (
	// SpendingConstantReal keeps real spending flat for life.
	SpendingConstantReal SpendingModel = "constant_real"
	// SpendingRetirementSmile declines 2%/year from age 70 to a 0.8 floor at
	// 80, then rises 2%/year with no ceiling (late-life healthcare growth).
	SpendingRetirementSmile SpendingModel = "retirement_smile"
	// SpendingConservativeDecline declines 1%/year after age 70, floored at 0.6.
	SpendingConservativeDecline SpendingModel = "conservative_decline"
)

// ParseSpendingModel resolves a spending model identifier.
func ParseSpendingModel(s string) (SpendingModel, error) {
	switch SpendingModel(s) {
	case SpendingConstantReal, SpendingRetirementSmile, SpendingConservativeDecline:
		return SpendingModel(s), nil
	default:
		return "", &domain.SimulationConfigError{Field: "spending_model", Reason: fmt.Sprintf("unknown spending model %q", s)}
	}
}

var (
	onePercent = decimal.NewFromFloat(0.01)
	twoPercent = decimal.NewFromFloat(0.02)

	smileFloor        = decimal.NewFromFloat(0.8)
	conservativeFloor = decimal.NewFromFloat(0.6)
)

// SpendingMultiplier returns the model's multiplier for a retiree of the
// given age. Pure function of its arguments.
func SpendingMultiplier(model SpendingModel, age int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	switch model {
	case SpendingRetirementSmile:
		switch {
		case age < 70:
			return one
		case age <= 80:
			return one.Sub(twoPercent.Mul(decimal.NewFromInt(int64(age - 70))))
		default:
			return smileFloor.Add(twoPercent.Mul(decimal.NewFromInt(int64(age - 80))))
		}
	case SpendingConservativeDecline:
		if age <= 70 {
			return one
		}
		m := one.Sub(onePercent.Mul(decimal.NewFromInt(int64(age - 70))))
		if m.LessThan(conservativeFloor) {
			return conservativeFloor
		}
		return m
	default: // constant_real
		return one
	}
}
