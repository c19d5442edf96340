package simulation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
	"github.com/retirewise/planner/pkg/dateutil"
)

// YearIncome is the household's income for one calendar year, in today's
// dollars, split by reliability.
type YearIncome struct {
	// Work is earned income from salary and consulting streams.
	Work decimal.Decimal
	// Guaranteed is Social Security plus pension benefits, each gated by the
	// owning person's individual retirement date.
	Guaranteed decimal.Decimal
	// Other is rental, royalty and similar semi-guaranteed stream income.
	Other decimal.Decimal
}

// Total returns all income for the year.
func (y YearIncome) Total() decimal.Decimal {
	return y.Work.Add(y.Guaranteed).Add(y.Other)
}

// IncomeLedger computes the income and budgeted expenses available to a
// household in a given year. It is a pure read of the profile; all amounts
// are in today's dollars and the caller applies inflation.
type IncomeLedger struct {
	profile *domain.HouseholdProfile
}

// NewIncomeLedger creates a ledger over a validated profile.
func NewIncomeLedger(profile *domain.HouseholdProfile) *IncomeLedger {
	return &IncomeLedger{profile: profile}
}

// IncomeForYear sums the household's income for one calendar year. Streams
// and benefits active for only part of the year are pro-rated by days.
func (l *IncomeLedger) IncomeForYear(year int) YearIncome {
	var income YearIncome

	for _, stream := range l.profile.IncomeStreams {
		annual := annualizedAmount(stream)
		end := stream.End
		if stream.Category.IsWork() {
			if ownerEnd := l.employmentEnd(stream.Owner); ownerEnd != nil {
				if end == nil || ownerEnd.Before(*end) {
					end = ownerEnd
				}
			}
		}
		fraction := dateutil.OverlapFraction(stream.Start, end, year)
		if fraction <= 0 {
			continue
		}
		amount := annual.Mul(decimal.NewFromFloat(fraction))
		if stream.Category.IsWork() {
			income.Work = income.Work.Add(amount)
		} else {
			income.Other = income.Other.Add(amount)
		}
	}

	for _, person := range l.profile.Persons {
		fraction := dateutil.FractionOfYearAfter(person.RetirementDate, year)
		if fraction <= 0 {
			continue
		}
		benefits := person.SocialSecurityAnnual.Add(person.PensionAnnual)
		income.Guaranteed = income.Guaranteed.Add(benefits.Mul(decimal.NewFromFloat(fraction)))
	}

	return income
}

// ExpensesForYear returns the household's budgeted annual expenses for one
// calendar year, in today's dollars. With no one retired the current
// schedule applies, with everyone retired the future schedule applies, and
// with exactly one of two retired the two schedules are blended 50/50 to
// smooth the transition year.
func (l *IncomeLedger) ExpensesForYear(year int) decimal.Decimal {
	retired := l.profile.RetiredCount(year)
	total := decimal.Zero
	half := decimal.NewFromFloat(0.5)

	for _, item := range l.profile.Budget.Items {
		if !item.ActiveInYear(year) {
			continue
		}
		factor, err := item.Frequency.AnnualizedFactor()
		if err != nil {
			// Validation rejects unknown frequencies before a run starts.
			continue
		}
		var amount decimal.Decimal
		switch {
		case retired == 0:
			amount = item.Current
		case retired == len(l.profile.Persons):
			amount = item.Future
		default:
			amount = item.Current.Add(item.Future).Mul(half)
		}
		total = total.Add(amount.Mul(factor))
	}
	return total
}

// employmentEnd returns the last day the named person works, or nil when the
// stream is not tied to a household member.
func (l *IncomeLedger) employmentEnd(owner string) *time.Time {
	if owner == "" {
		return nil
	}
	for _, person := range l.profile.Persons {
		if person.Name == owner {
			end := person.RetirementDate.AddDate(0, 0, -1)
			return &end
		}
	}
	return nil
}

func annualizedAmount(stream domain.IncomeStream) decimal.Decimal {
	factor, err := stream.Frequency.AnnualizedFactor()
	if err != nil {
		return decimal.Zero
	}
	return stream.Amount.Mul(factor)
}
