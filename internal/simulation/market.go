package simulation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
)

// MarketDraw is one year's sampled market conditions.
type MarketDraw struct {
	Stock     decimal.Decimal
	Bond      decimal.Decimal
	Inflation decimal.Decimal
}

// MarketModel draws correlated annual stock/bond returns and inflation from a
// fixed assumption set. Each model owns its RNG; two models built with the
// same assumptions and seed produce identical draw sequences.
type MarketModel struct {
	assumptions domain.MarketAssumptions
	rng         *rand.Rand

	// residual is sqrt(1 - rho^2), the off-diagonal Cholesky factor of the
	// 2x2 stock/bond correlation matrix.
	residual float64
}

// NewMarketModel creates a seeded market model for one simulated path.
func NewMarketModel(assumptions domain.MarketAssumptions, seed int64) *MarketModel {
	rho := assumptions.StockBondCorrelation
	return &MarketModel{
		assumptions: assumptions,
		rng:         rand.New(rand.NewSource(seed)),
		residual:    math.Sqrt(1 - rho*rho),
	}
}

// Bounds for a single sampled annual rate. Values outside this range are
// treated as numerically pathological and clamped so they cannot poison
// downstream percentile aggregation.
const (
	minAnnualRate = -0.99
	maxAnnualRate = 10.0
)

// SampleYear draws one year of market conditions. With zero standard
// deviations the draw degenerates to the configured means.
func (m *MarketModel) SampleYear() MarketDraw {
	zStock := m.rng.NormFloat64()
	zBond := m.rng.NormFloat64()
	zInflation := m.rng.NormFloat64()

	rho := m.assumptions.StockBondCorrelation
	stock := m.assumptions.StockMean + m.assumptions.StockStdDev*zStock
	bond := m.assumptions.BondMean + m.assumptions.BondStdDev*(rho*zStock+m.residual*zBond)
	inflation := m.assumptions.InflationMean + m.assumptions.InflationStdDev*zInflation

	return MarketDraw{
		Stock:     decimal.NewFromFloat(clampRate(stock, m.assumptions.StockMean)),
		Bond:      decimal.NewFromFloat(clampRate(bond, m.assumptions.BondMean)),
		Inflation: decimal.NewFromFloat(clampRate(inflation, m.assumptions.InflationMean)),
	}
}

// clampRate replaces non-finite samples with the configured mean and bounds
// finite ones to a plausible annual range.
func clampRate(rate, mean float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = mean
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return 0
		}
	}
	if rate < minAnnualRate {
		return minAnnualRate
	}
	if rate > maxAnnualRate {
		return maxAnnualRate
	}
	return rate
}

// deterministicAssumptions returns a copy of the assumption set with all
// volatility removed, for expected-case projections.
func deterministicAssumptions(a domain.MarketAssumptions) domain.MarketAssumptions {
	a.StockStdDev = 0
	a.BondStdDev = 0
	a.InflationStdDev = 0
	return a
}
