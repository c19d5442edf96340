package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retirewise/planner/internal/domain"
)

func runFlatPath(t *testing.T, profile *domain.HouseholdProfile, startYear, horizon int) PathResult {
	t.Helper()
	market := NewMarketModel(zeroVolAssumptions(), 1)
	sim := NewPathSimulator(profile, market, SpendingConstantReal, startYear, horizon, nil)
	return sim.Run()
}

func TestPathAccumulationGrows(t *testing.T) {
	// Working years only: $120k income vs $80k spending plus 7%/3% returns.
	result := runFlatPath(t, singleProfile(), 2026, 4)

	require.Len(t, result.Years, 4)
	assert.False(t, result.Failed)
	start := singleProfile().BalanceByCategory(domain.Taxable).
		Add(singleProfile().BalanceByCategory(domain.TaxDeferred)).
		Add(singleProfile().BalanceByCategory(domain.Roth))
	assert.True(t, result.EndingBalance.GreaterThan(start))

	for _, year := range result.Years {
		assert.Equal(t, Accumulating, year.State)
		assert.True(t, year.NetCashFlow.IsPositive())
		assert.True(t, year.Withdrawal.IsZero())
	}
}

func TestPathTransitionsToWithdrawing(t *testing.T) {
	result := runFlatPath(t, singleProfile(), 2028, 5)

	byYear := map[int]YearState{}
	for _, y := range result.Years {
		byYear[y.Year] = y
	}
	assert.Equal(t, Accumulating, byYear[2029].State)
	assert.Equal(t, Withdrawing, byYear[2030].State, "retirement year flips the phase")
	assert.Equal(t, Withdrawing, byYear[2032].State)
}

func TestPathDepletedIsTerminal(t *testing.T) {
	result := runFlatPath(t, depletedProfile(), 2026, 10)

	require.True(t, result.Failed)
	assert.Equal(t, 2026, result.FailedYear)

	sawDepleted := false
	for _, year := range result.Years {
		if sawDepleted {
			assert.Equal(t, Depleted, year.State, "depleted is terminal")
		}
		if year.State == Depleted {
			sawDepleted = true
		}
		assert.False(t, year.Balances.Taxable.IsNegative())
		assert.False(t, year.Balances.TaxDeferred.IsNegative())
		assert.False(t, year.Balances.Roth.IsNegative())
	}
	assert.True(t, sawDepleted)
}

func TestPathDepletedTracksUnmetNeed(t *testing.T) {
	result := runFlatPath(t, depletedProfile(), 2026, 5)

	last := result.Years[len(result.Years)-1]
	assert.Equal(t, Depleted, last.State)
	assert.True(t, last.UnmetNeed.IsPositive(), "shortfall must be recorded, not silently dropped")
}

func TestPathPrimaryAge(t *testing.T) {
	result := runFlatPath(t, singleProfile(), 2026, 2)
	// Born 1965: attains 61 during 2026.
	assert.Equal(t, 61, result.Years[0].PrimaryAge)
	assert.Equal(t, 62, result.Years[1].PrimaryAge)
}

func TestPathAllocationOverride(t *testing.T) {
	profile := depletedProfile()
	profile.Accounts[0].Balance = decimal100k()
	market := NewMarketModel(zeroVolAssumptions(), 1)

	allStock := &domain.Allocation{Stock: one()}
	allBond := &domain.Allocation{Bond: one()}

	stockRun := NewPathSimulator(profile, market, SpendingConstantReal, 2026, 1, allStock).Run()
	market = NewMarketModel(zeroVolAssumptions(), 1)
	bondRun := NewPathSimulator(profile, market, SpendingConstantReal, 2026, 1, allBond).Run()

	// 7% stock vs 3% bond on identical flows.
	assert.True(t, stockRun.EndingBalance.GreaterThan(bondRun.EndingBalance))
}

func TestPathMaxDrawdownOnDepletion(t *testing.T) {
	result := runFlatPath(t, depletedProfile(), 2026, 5)
	// Portfolio goes to zero from a positive peak: drawdown reaches 100%.
	assert.True(t, result.MaxDrawdown.Equal(one()))
}

func TestPathInflationCompoundsSpending(t *testing.T) {
	result := runFlatPath(t, singleProfile(), 2026, 3)
	require.Len(t, result.Years, 3)
	// 2% inflation: each year's nominal spending exceeds the last.
	assert.True(t, result.Years[1].Expenses.GreaterThan(result.Years[0].Expenses))
	assert.True(t, result.Years[2].Expenses.GreaterThan(result.Years[1].Expenses))
}
