package simulation

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/retirewise/planner/internal/domain"
)

// AllocationPreset names a stock/bond split applied uniformly across the
// portfolio for side-by-side comparison runs.
type AllocationPreset struct {
	Name  string
	Stock decimal.Decimal
	Bond  decimal.Decimal
}

// DefaultPresets returns the standard conservative/moderate/aggressive set.
func DefaultPresets() []AllocationPreset {
	return []AllocationPreset{
		{Name: "conservative", Stock: decimal.NewFromFloat(0.3), Bond: decimal.NewFromFloat(0.7)},
		{Name: "moderate", Stock: decimal.NewFromFloat(0.6), Bond: decimal.NewFromFloat(0.4)},
		{Name: "aggressive", Stock: decimal.NewFromFloat(0.8), Bond: decimal.NewFromFloat(0.2)},
	}
}

// ScenarioAggregator repeats a Monte Carlo run across allocation presets,
// overriding only the stock/bond split while holding all other inputs fixed.
type ScenarioAggregator struct {
	cfg    RunnerConfig
	logger Logger
}

// NewScenarioAggregator validates the base configuration and creates an
// aggregator. The base configuration's allocation override is ignored; each
// preset supplies its own.
func NewScenarioAggregator(cfg RunnerConfig) (*ScenarioAggregator, error) {
	cfg.AllocationOverride = nil
	if _, err := NewMonteCarloRunner(cfg); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &ScenarioAggregator{cfg: cfg, logger: logger}, nil
}

// RunAll executes one Monte Carlo run per preset, in parallel, and returns
// the results keyed by preset name. Every preset run uses the same seed so
// differences reflect allocation alone.
func (a *ScenarioAggregator) RunAll(ctx context.Context, profile *domain.HouseholdProfile, presets []AllocationPreset) (map[string]*domain.SimulationResult, error) {
	if len(presets) == 0 {
		presets = DefaultPresets()
	}

	results := make(map[string]*domain.SimulationResult, len(presets))
	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)

	for _, preset := range presets {
		preset := preset
		group.Go(func() error {
			cfg := a.cfg
			cfg.AllocationOverride = &domain.Allocation{Stock: preset.Stock, Bond: preset.Bond}
			runner, err := NewMonteCarloRunner(cfg)
			if err != nil {
				return err
			}
			a.logger.Debugf("running preset %q (%s/%s stock/bond)", preset.Name, preset.Stock, preset.Bond)
			result, err := runner.Run(gctx, profile)
			if err != nil {
				return err
			}
			result.MarketPreset = cfg.Assumptions.Name
			mu.Lock()
			results[preset.Name] = result
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
