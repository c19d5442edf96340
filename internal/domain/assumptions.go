package domain

import (
	"fmt"
	"math"
)

// MarketAssumptions parameterizes the stochastic return model. Means, standard
// deviations and the stock/bond correlation are annual rates. The set is
// immutable once a run starts; stress scenarios are expressed purely as
// different assumption values.
type MarketAssumptions struct {
	Name string `yaml:"name"`

	StockMean   float64 `yaml:"stock_mean"`
	StockStdDev float64 `yaml:"stock_std_dev"`

	BondMean   float64 `yaml:"bond_mean"`
	BondStdDev float64 `yaml:"bond_std_dev"`

	InflationMean   float64 `yaml:"inflation_mean"`
	InflationStdDev float64 `yaml:"inflation_std_dev"`

	// StockBondCorrelation is the correlation coefficient between annual stock
	// and bond returns, in [-1, 1]. Inflation draws are independent.
	StockBondCorrelation float64 `yaml:"stock_bond_correlation"`
}

// Validate rejects assumption sets that would poison the random draws.
func (m MarketAssumptions) Validate() error {
	fields := map[string]float64{
		"stock_mean":        m.StockMean,
		"stock_std_dev":     m.StockStdDev,
		"bond_mean":         m.BondMean,
		"bond_std_dev":      m.BondStdDev,
		"inflation_mean":    m.InflationMean,
		"inflation_std_dev": m.InflationStdDev,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SimulationConfigError{Field: name, Reason: "must be a finite number"}
		}
	}
	if m.StockStdDev < 0 || m.BondStdDev < 0 || m.InflationStdDev < 0 {
		return &SimulationConfigError{Field: "std_dev", Reason: "standard deviations cannot be negative"}
	}
	if m.StockBondCorrelation < -1 || m.StockBondCorrelation > 1 || math.IsNaN(m.StockBondCorrelation) {
		return &SimulationConfigError{Field: "stock_bond_correlation", Reason: fmt.Sprintf("must be in [-1, 1], got %v", m.StockBondCorrelation)}
	}
	return nil
}

// HistoricalAssumptions returns the default preset based on long-run US
// market statistics.
func HistoricalAssumptions() MarketAssumptions {
	return MarketAssumptions{
		Name:                 "historical",
		StockMean:            0.10,
		StockStdDev:          0.17,
		BondMean:             0.045,
		BondStdDev:           0.055,
		InflationMean:        0.027,
		InflationStdDev:      0.014,
		StockBondCorrelation: -0.10,
	}
}

// BearMarketAssumptions returns a stressed preset with depressed means and
// elevated volatility.
func BearMarketAssumptions() MarketAssumptions {
	return MarketAssumptions{
		Name:                 "bear_market",
		StockMean:            0.04,
		StockStdDev:          0.22,
		BondMean:             0.02,
		BondStdDev:           0.08,
		InflationMean:        0.04,
		InflationStdDev:      0.02,
		StockBondCorrelation: 0.15,
	}
}

// AssumptionPresets maps preset names to their assumption sets.
func AssumptionPresets() map[string]MarketAssumptions {
	return map[string]MarketAssumptions{
		"historical":  HistoricalAssumptions(),
		"bear_market": BearMarketAssumptions(),
	}
}

// PresetByName resolves a named assumption preset.
func PresetByName(name string) (MarketAssumptions, error) {
	preset, ok := AssumptionPresets()[name]
	if !ok {
		return MarketAssumptions{}, &SimulationConfigError{Field: "market_preset", Reason: fmt.Sprintf("unknown preset %q", name)}
	}
	return preset, nil
}
