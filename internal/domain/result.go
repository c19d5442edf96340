package domain

import (
	"github.com/shopspring/decimal"
)

// Timeline holds per-year percentile bands of total portfolio balance across
// all simulated paths. The slices are parallel arrays indexed by year.
type Timeline struct {
	Years  []int             `json:"years"`
	P5     []decimal.Decimal `json:"p5"`
	Median []decimal.Decimal `json:"median"`
	P95    []decimal.Decimal `json:"p95"`
}

// SimulationResult is the aggregate outcome of one Monte Carlo run. It is
// immutable once computed; the caller owns its lifetime.
type SimulationResult struct {
	SuccessRate        float64         `json:"success_rate"`
	MedianFinalBalance decimal.Decimal `json:"median_final_balance"`
	Percentile10       decimal.Decimal `json:"percentile_10"`
	Percentile90       decimal.Decimal `json:"percentile_90"`
	ExpectedValue      decimal.Decimal `json:"expected_value"`
	StdDeviation       decimal.Decimal `json:"std_deviation"`
	MedianMaxDrawdown  decimal.Decimal `json:"median_max_drawdown"`
	Timeline           Timeline        `json:"timeline"`

	NumSimulations int    `json:"num_simulations"`
	Seed           int64  `json:"seed"`
	SpendingModel  string `json:"spending_model"`
	MarketPreset   string `json:"market_preset"`
	StartYear      int    `json:"start_year"`
	HorizonYears   int    `json:"horizon_years"`
}
