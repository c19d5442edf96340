package simulation

import (
	"time"

	"github.com/retirewise/planner/internal/domain"
)

// ExpectedPath runs a single zero-volatility path: every market draw equals
// the assumption means, so the trajectory is the deterministic expected case.
// Useful as a sanity check next to the Monte Carlo spread.
func ExpectedPath(profile *domain.HouseholdProfile, assumptions domain.MarketAssumptions, model SpendingModel, startYear int) (*PathResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := assumptions.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseSpendingModel(string(model)); err != nil {
		return nil, err
	}
	if startYear == 0 {
		startYear = time.Now().Year()
	}

	horizon := ProjectionHorizon(profile, startYear)
	market := NewMarketModel(deterministicAssumptions(assumptions), 1)
	sim := NewPathSimulator(profile, market, model, startYear, horizon, nil)
	result := sim.Run()
	return &result, nil
}
