package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
	"github.com/retirewise/planner/pkg/dateutil"
	"github.com/retirewise/planner/pkg/money"
)

// PathState is the phase of one simulated path.
type PathState int

const (
	// Accumulating covers the working years; surplus income is saved into
	// the taxable bucket.
	Accumulating PathState = iota
	// Withdrawing begins when any household member reaches their individual
	// retirement date; shortfalls are funded by the withdrawal engine.
	Withdrawing
	// Depleted is terminal: the portfolio ran out with an unmet need. The
	// path keeps running so aggregate statistics stay meaningful, but it is
	// counted as failed.
	Depleted
)

func (s PathState) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Withdrawing:
		return "withdrawing"
	case Depleted:
		return "depleted"
	default:
		return "unknown"
	}
}

// YearState records one year of a simulated path. Balances are end-of-year,
// after withdrawals and growth. Monetary fields are nominal dollars.
type YearState struct {
	Year       int
	PrimaryAge int
	State      PathState

	Balances    Balances
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Withdrawal  decimal.Decimal
	RMDForced   decimal.Decimal
	NetCashFlow decimal.Decimal
	UnmetNeed   decimal.Decimal
}

// PathResult is the outcome of one full path simulation.
type PathResult struct {
	Years         []YearState
	EndingBalance decimal.Decimal
	Failed        bool
	FailedYear    int
	MaxDrawdown   decimal.Decimal
}

// PathSimulator advances one household's portfolio year by year across the
// projection horizon for a single stochastic path. Each path owns its market
// model; the profile is shared read-only.
type PathSimulator struct {
	profile       *domain.HouseholdProfile
	ledger        *IncomeLedger
	withdrawals   *WithdrawalEngine
	market        *MarketModel
	spendingModel SpendingModel
	startYear     int
	horizon       int
	allocations   bucketAllocations
}

// bucketAllocations caches the effective stock/bond/cash split per
// withdrawal category, weighted by account balances at the start of the run.
type bucketAllocations struct {
	taxable     domain.Allocation
	taxDeferred domain.Allocation
	roth        domain.Allocation
}

// NewPathSimulator builds a simulator for one path. The allocation override,
// when non-nil, replaces every bucket's split (used for preset comparisons).
func NewPathSimulator(profile *domain.HouseholdProfile, market *MarketModel, spendingModel SpendingModel, startYear, horizon int, override *domain.Allocation) *PathSimulator {
	primary := profile.Primary()
	return &PathSimulator{
		profile:       profile,
		ledger:        NewIncomeLedger(profile),
		withdrawals:   NewWithdrawalEngine(dateutil.GetRMDAge(primary.BirthDate.Year())),
		market:        market,
		spendingModel: spendingModel,
		startYear:     startYear,
		horizon:       horizon,
		allocations:   resolveAllocations(profile, override),
	}
}

// Run simulates the full projection horizon and returns the trajectory.
func (s *PathSimulator) Run() PathResult {
	balances := Balances{
		Taxable:     s.profile.BalanceByCategory(domain.Taxable),
		TaxDeferred: s.profile.BalanceByCategory(domain.TaxDeferred),
		Roth:        s.profile.BalanceByCategory(domain.Roth),
	}

	primary := s.profile.Primary()
	cumInflation := decimal.NewFromInt(1)
	one := decimal.NewFromInt(1)
	state := Accumulating
	years := make([]YearState, 0, s.horizon)

	result := PathResult{}
	peak := balances.Total()

	for i := 0; i < s.horizon; i++ {
		year := s.startYear + i
		age := dateutil.AgeInYear(primary.BirthDate, year)

		draw := s.market.SampleYear()

		// Nominal spending target: inflation-accumulated base times the
		// behavioral age multiplier.
		baseSpending := s.ledger.ExpensesForYear(year)
		spending := baseSpending.Mul(cumInflation).Mul(SpendingMultiplier(s.spendingModel, age))
		income := s.ledger.IncomeForYear(year).Total().Mul(cumInflation)

		if state == Accumulating && s.profile.RetiredCount(year) > 0 {
			state = Withdrawing
		}

		net := income.Sub(spending)
		var withdrawal, rmdForced, unmet decimal.Decimal

		if state == Depleted {
			// Terminal: the need stays tracked as an unmet shortfall, and any
			// residual guaranteed income beyond spending still accrues.
			if net.IsNegative() {
				unmet = net.Neg()
			} else {
				balances.Taxable = balances.Taxable.Add(net)
			}
		} else {
			need := money.ClampNonNegative(spending.Sub(income))
			res := s.withdrawals.Withdraw(need, balances, age)
			balances = res.Balances
			withdrawal = res.Taken
			rmdForced = res.RMDForced
			// Surplus RMD cash is reinvested in the taxable bucket.
			balances.Taxable = balances.Taxable.Add(res.Surplus)
			if res.Taken.LessThan(need) {
				unmet = need.Sub(res.Taken)
				state = Depleted
				if !result.Failed {
					result.Failed = true
					result.FailedYear = year
				}
			}
			if net.IsPositive() {
				balances.Taxable = balances.Taxable.Add(net)
			}
		}

		// Withdraw first, then grow: growth applies to post-withdrawal
		// balances, equivalent to start-of-period withdrawals.
		balances.Taxable = balances.Taxable.Mul(one.Add(weightedReturn(s.allocations.taxable, draw)))
		balances.TaxDeferred = balances.TaxDeferred.Mul(one.Add(weightedReturn(s.allocations.taxDeferred, draw)))
		balances.Roth = balances.Roth.Mul(one.Add(weightedReturn(s.allocations.roth, draw)))

		total := balances.Total()
		if total.GreaterThan(peak) {
			peak = total
		}
		if peak.IsPositive() {
			drawdown := peak.Sub(total).Div(peak)
			if drawdown.GreaterThan(result.MaxDrawdown) {
				result.MaxDrawdown = drawdown
			}
		}

		years = append(years, YearState{
			Year:        year,
			PrimaryAge:  age,
			State:       state,
			Balances:    balances,
			Income:      income,
			Expenses:    spending,
			Withdrawal:  withdrawal,
			RMDForced:   rmdForced,
			NetCashFlow: net,
			UnmetNeed:   unmet,
		})

		cumInflation = cumInflation.Mul(one.Add(draw.Inflation))
	}

	result.Years = years
	if len(years) > 0 {
		result.EndingBalance = years[len(years)-1].Balances.Total()
	}
	return result
}

// weightedReturn combines a draw with a bucket's allocation. Cash is modeled
// at a zero nominal return.
func weightedReturn(alloc domain.Allocation, draw MarketDraw) decimal.Decimal {
	return alloc.Stock.Mul(draw.Stock).Add(alloc.Bond.Mul(draw.Bond))
}

// resolveAllocations computes the balance-weighted allocation of each
// withdrawal category. Empty categories inherit the portfolio-wide mix so
// that later inflows (surplus savings) still grow sensibly.
func resolveAllocations(profile *domain.HouseholdProfile, override *domain.Allocation) bucketAllocations {
	if override != nil {
		return bucketAllocations{taxable: *override, taxDeferred: *override, roth: *override}
	}
	portfolio := weightedAllocation(profile.Accounts)
	pick := func(c domain.AccountCategory) domain.Allocation {
		var accounts []domain.AssetAccount
		for _, a := range profile.Accounts {
			if a.Category == c && a.Balance.IsPositive() {
				accounts = append(accounts, a)
			}
		}
		if len(accounts) == 0 {
			return portfolio
		}
		return weightedAllocation(accounts)
	}
	return bucketAllocations{
		taxable:     pick(domain.Taxable),
		taxDeferred: pick(domain.TaxDeferred),
		roth:        pick(domain.Roth),
	}
}

// defaultAllocation is used when a profile has no funded accounts at all.
var defaultAllocation = domain.Allocation{
	Stock: decimal.NewFromFloat(0.6),
	Bond:  decimal.NewFromFloat(0.4),
}

func weightedAllocation(accounts []domain.AssetAccount) domain.Allocation {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	if !total.IsPositive() {
		return defaultAllocation
	}
	var out domain.Allocation
	for _, a := range accounts {
		weight := a.Balance.Div(total)
		out.Stock = out.Stock.Add(a.Allocation.Stock.Mul(weight))
		out.Bond = out.Bond.Add(a.Allocation.Bond.Mul(weight))
		out.Cash = out.Cash.Add(a.Allocation.Cash.Mul(weight))
	}
	return out
}
