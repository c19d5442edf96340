package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/pkg/money"
)

// Balances tracks the portfolio by withdrawal category.
type Balances struct {
	Taxable     decimal.Decimal
	TaxDeferred decimal.Decimal
	Roth        decimal.Decimal
}

// Total returns the combined portfolio balance.
func (b Balances) Total() decimal.Decimal {
	return b.Taxable.Add(b.TaxDeferred).Add(b.Roth)
}

// WithdrawalResult reports one withdrawal decision.
type WithdrawalResult struct {
	// Taken is the amount applied to the requested need. Taken < need is the
	// terminal depletion signal; it is data, not an error.
	Taken decimal.Decimal
	// RMDForced is the required minimum distribution withdrawn from the
	// tax-deferred bucket regardless of need.
	RMDForced decimal.Decimal
	// Surplus is RMD cash in excess of need, available for reinvestment.
	Surplus decimal.Decimal
	// Balances are the updated bucket balances; never negative.
	Balances Balances
}

// WithdrawalEngine decides how a spending shortfall is funded across the
// taxable, tax-deferred and Roth buckets. Withdrawals follow the
// tax-efficiency order taxable, then tax-deferred, then Roth, with RMD
// floors applied first once the owner reaches RMD age.
type WithdrawalEngine struct {
	rmdAge int
}

// NewWithdrawalEngine creates an engine for an account owner whose required
// distributions begin at rmdAge.
func NewWithdrawalEngine(rmdAge int) *WithdrawalEngine {
	return &WithdrawalEngine{rmdAge: rmdAge}
}

// Withdraw funds a need from the portfolio for an owner of the given age.
// The returned balances are never negative, and Taken never exceeds need.
func (e *WithdrawalEngine) Withdraw(need decimal.Decimal, balances Balances, ownerAge int) WithdrawalResult {
	need = money.ClampNonNegative(need)
	result := WithdrawalResult{Balances: balances}

	// RMD floor comes out of the tax-deferred bucket first, whether or not
	// the household needs the cash.
	if ownerAge >= e.rmdAge {
		rmd := balances.TaxDeferred.Div(UniformLifetimeFactor(ownerAge))
		rmd = money.Min(rmd, result.Balances.TaxDeferred)
		result.Balances.TaxDeferred = result.Balances.TaxDeferred.Sub(rmd)
		result.RMDForced = rmd

		applied := money.Min(rmd, need)
		result.Taken = applied
		result.Surplus = rmd.Sub(applied)
		need = need.Sub(applied)
	}

	if need.IsPositive() {
		var fromTaxable, fromDeferred, fromRoth decimal.Decimal
		fromTaxable, result.Balances.Taxable = drain(need, result.Balances.Taxable)
		need = need.Sub(fromTaxable)
		fromDeferred, result.Balances.TaxDeferred = drain(need, result.Balances.TaxDeferred)
		need = need.Sub(fromDeferred)
		fromRoth, result.Balances.Roth = drain(need, result.Balances.Roth)

		result.Taken = result.Taken.Add(fromTaxable).Add(fromDeferred).Add(fromRoth)
	}

	return result
}

// drain withdraws up to amount from a bucket, returning the amount taken and
// the remaining balance.
func drain(amount, balance decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	taken := money.Min(amount, balance)
	return taken, balance.Sub(taken)
}

// uniformLifetimeTable maps age to the IRS uniform lifetime distribution
// period used to compute required minimum distributions.
var uniformLifetimeTable = map[int]decimal.Decimal{
	72:  decimal.NewFromFloat(27.4),
	73:  decimal.NewFromFloat(26.5),
	74:  decimal.NewFromFloat(25.5),
	75:  decimal.NewFromFloat(24.6),
	76:  decimal.NewFromFloat(23.7),
	77:  decimal.NewFromFloat(22.9),
	78:  decimal.NewFromFloat(22.0),
	79:  decimal.NewFromFloat(21.1),
	80:  decimal.NewFromFloat(20.2),
	81:  decimal.NewFromFloat(19.4),
	82:  decimal.NewFromFloat(18.5),
	83:  decimal.NewFromFloat(17.7),
	84:  decimal.NewFromFloat(16.8),
	85:  decimal.NewFromFloat(16.0),
	86:  decimal.NewFromFloat(15.2),
	87:  decimal.NewFromFloat(14.4),
	88:  decimal.NewFromFloat(13.7),
	89:  decimal.NewFromFloat(12.9),
	90:  decimal.NewFromFloat(12.2),
	91:  decimal.NewFromFloat(11.5),
	92:  decimal.NewFromFloat(10.8),
	93:  decimal.NewFromFloat(10.1),
	94:  decimal.NewFromFloat(9.5),
	95:  decimal.NewFromFloat(8.9),
	96:  decimal.NewFromFloat(8.4),
	97:  decimal.NewFromFloat(7.8),
	98:  decimal.NewFromFloat(7.3),
	99:  decimal.NewFromFloat(6.8),
	100: decimal.NewFromFloat(6.4),
}

// UniformLifetimeFactor returns the IRS-style life expectancy factor for an
// age; factors decrease monotonically with age.
func UniformLifetimeFactor(age int) decimal.Decimal {
	if factor, ok := uniformLifetimeTable[age]; ok {
		return factor
	}
	if age > 100 {
		return decimal.NewFromFloat(6.0)
	}
	// Below the table's range, extend linearly from the age-72 entry.
	return uniformLifetimeTable[72].Add(decimal.NewFromInt(int64(72 - age)))
}
