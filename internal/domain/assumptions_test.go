package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsValidate(t *testing.T) {
	for name, preset := range AssumptionPresets() {
		assert.NoError(t, preset.Validate(), "preset %q must be internally consistent", name)
		assert.Equal(t, name, preset.Name)
	}
}

func TestBearMarketIsStressed(t *testing.T) {
	historical := HistoricalAssumptions()
	bear := BearMarketAssumptions()

	assert.Less(t, bear.StockMean, historical.StockMean)
	assert.Greater(t, bear.StockStdDev, historical.StockStdDev)
	assert.Greater(t, bear.InflationMean, historical.InflationMean)
}

func TestPresetByName(t *testing.T) {
	preset, err := PresetByName("historical")
	require.NoError(t, err)
	assert.Equal(t, "historical", preset.Name)

	_, err = PresetByName("roaring_twenties")
	require.Error(t, err)
	var cerr *SimulationConfigError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, "market_preset", cerr.Field)
}

func TestAssumptionsValidate(t *testing.T) {
	base := HistoricalAssumptions()

	nan := base
	nan.StockMean = math.NaN()
	assert.Error(t, nan.Validate())

	inf := base
	inf.BondStdDev = math.Inf(1)
	assert.Error(t, inf.Validate())

	negative := base
	negative.InflationStdDev = -0.01
	assert.Error(t, negative.Validate())

	correlation := base
	correlation.StockBondCorrelation = 1.5
	err := correlation.Validate()
	require.Error(t, err)
	var cerr *SimulationConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "stock_bond_correlation", cerr.Field)
}

func TestErrorMessages(t *testing.T) {
	perr := &InvalidProfileError{Field: "persons", Reason: "empty"}
	assert.Contains(t, perr.Error(), "persons")
	assert.Contains(t, perr.Error(), "empty")

	cerr := &SimulationConfigError{Field: "simulations", Reason: "too small"}
	assert.Contains(t, cerr.Error(), "simulations")
}
