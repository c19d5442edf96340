package simulation

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/retirewise/planner/internal/domain"
	"github.com/retirewise/planner/pkg/dateutil"
)

// Bounds on the simulation count accepted by a runner.
const (
	MinSimulations = 100
	MaxSimulations = 50000
)

// RunnerConfig configures one Monte Carlo run. All knobs are explicit; the
// engine keeps no process-wide defaults.
type RunnerConfig struct {
	Simulations   int
	Seed          int64
	SpendingModel SpendingModel
	Assumptions   domain.MarketAssumptions

	// StartYear is the first projection year; zero means the current year.
	StartYear int
	// HorizonYears overrides the life-expectancy-derived horizon when positive.
	HorizonYears int
	// Workers bounds the worker pool; zero means GOMAXPROCS.
	Workers int
	// AllocationOverride, when set, replaces every account's stock/bond split.
	AllocationOverride *domain.Allocation

	Logger Logger
}

// MonteCarloRunner executes many independent path simulations and aggregates
// them into percentile statistics.
type MonteCarloRunner struct {
	cfg    RunnerConfig
	logger Logger
}

// NewMonteCarloRunner validates the configuration and creates a runner.
func NewMonteCarloRunner(cfg RunnerConfig) (*MonteCarloRunner, error) {
	if cfg.Simulations < MinSimulations || cfg.Simulations > MaxSimulations {
		return nil, &domain.SimulationConfigError{
			Field:  "simulations",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinSimulations, MaxSimulations, cfg.Simulations),
		}
	}
	if _, err := ParseSpendingModel(string(cfg.SpendingModel)); err != nil {
		return nil, err
	}
	if err := cfg.Assumptions.Validate(); err != nil {
		return nil, err
	}
	if cfg.HorizonYears < 0 {
		return nil, &domain.SimulationConfigError{Field: "horizon_years", Reason: "cannot be negative"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &MonteCarloRunner{cfg: cfg, logger: logger}, nil
}

// Run executes the configured number of independent paths and reduces them
// into a SimulationResult. Given the same explicit seed the result is
// bit-for-bit reproducible. The context cancels a run cooperatively between
// paths.
func (r *MonteCarloRunner) Run(ctx context.Context, profile *domain.HouseholdProfile) (*domain.SimulationResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	startYear := r.cfg.StartYear
	if startYear == 0 {
		startYear = time.Now().Year()
	}
	horizon := r.cfg.HorizonYears
	if horizon == 0 {
		horizon = ProjectionHorizon(profile, startYear)
	}
	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := r.cfg.Simulations
	r.logger.Debugf("running %d simulations, horizon %d years, seed %d", n, horizon, seed)

	// Each worker writes only to its own index; no synchronization needed
	// beyond the group wait.
	finals := make([]float64, n)
	failed := make([]bool, n)
	drawdowns := make([]float64, n)
	totals := make([][]float64, n)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		if err := gctx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			market := NewMarketModel(r.cfg.Assumptions, pathSeed(seed, i))
			sim := NewPathSimulator(profile, market, r.cfg.SpendingModel, startYear, horizon, r.cfg.AllocationOverride)
			path := sim.Run()

			finals[i] = decimalToFloat(path.EndingBalance)
			failed[i] = path.Failed
			drawdowns[i] = decimalToFloat(path.MaxDrawdown)
			yearTotals := make([]float64, len(path.Years))
			for y, state := range path.Years {
				yearTotals[y] = decimalToFloat(state.Balances.Total())
			}
			totals[i] = yearTotals
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.aggregate(finals, failed, drawdowns, totals, startYear, horizon, seed), nil
}

// aggregate is the single-threaded reduction over all collected paths.
func (r *MonteCarloRunner) aggregate(finals []float64, failed []bool, drawdowns []float64, totals [][]float64, startYear, horizon int, seed int64) *domain.SimulationResult {
	n := len(finals)

	successes := 0
	for _, f := range failed {
		if !f {
			successes++
		}
	}

	sortedFinals := append([]float64(nil), finals...)
	sort.Float64s(sortedFinals)
	sortedDrawdowns := append([]float64(nil), drawdowns...)
	sort.Float64s(sortedDrawdowns)

	mean, _ := stats.Mean(finals)
	stdDev, _ := stats.StandardDeviation(finals)

	timeline := domain.Timeline{
		Years:  make([]int, horizon),
		P5:     make([]decimal.Decimal, horizon),
		Median: make([]decimal.Decimal, horizon),
		P95:    make([]decimal.Decimal, horizon),
	}
	column := make([]float64, n)
	for y := 0; y < horizon; y++ {
		for i := 0; i < n; i++ {
			column[i] = totals[i][y]
		}
		sort.Float64s(column)
		timeline.Years[y] = startYear + y
		timeline.P5[y] = decimal.NewFromFloat(interpolatedPercentile(column, 5))
		timeline.Median[y] = decimal.NewFromFloat(interpolatedPercentile(column, 50))
		timeline.P95[y] = decimal.NewFromFloat(interpolatedPercentile(column, 95))
	}

	return &domain.SimulationResult{
		SuccessRate:        float64(successes) / float64(n),
		MedianFinalBalance: decimal.NewFromFloat(interpolatedPercentile(sortedFinals, 50)),
		Percentile10:       decimal.NewFromFloat(interpolatedPercentile(sortedFinals, 10)),
		Percentile90:       decimal.NewFromFloat(interpolatedPercentile(sortedFinals, 90)),
		ExpectedValue:      decimal.NewFromFloat(mean),
		StdDeviation:       decimal.NewFromFloat(stdDev),
		MedianMaxDrawdown:  decimal.NewFromFloat(interpolatedPercentile(sortedDrawdowns, 50)),
		Timeline:           timeline,
		NumSimulations:     n,
		Seed:               seed,
		SpendingModel:      string(r.cfg.SpendingModel),
		MarketPreset:       r.cfg.Assumptions.Name,
		StartYear:          startYear,
		HorizonYears:       horizon,
	}
}

// ProjectionHorizon derives the number of projection years from household
// life expectancies.
func ProjectionHorizon(profile *domain.HouseholdProfile, startYear int) int {
	horizon := 1
	for _, person := range profile.Persons {
		expectancy := person.LifeExpectancy
		if expectancy == 0 {
			expectancy = domain.DefaultLifeExpectancy
		}
		years := expectancy - dateutil.AgeInYear(person.BirthDate, startYear) + 1
		if years > horizon {
			horizon = years
		}
	}
	return horizon
}

// pathSeed derives the sub-seed for one path from the run seed using a
// splitmix64 step. Derivation is lock-free and deterministic, so paths stay
// statistically independent without sharing RNG state.
func pathSeed(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// interpolatedPercentile computes the p-th percentile of a sorted sample by
// linear interpolation between order statistics. The stats package's
// Percentile uses a nearest-rank variant, which misbehaves on small samples
// and does not match the interpolation convention used here.
func interpolatedPercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
