package simulation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retirewise/planner/internal/domain"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// singleProfile is a one-person household: working on $120k until mid-2030,
// then $30k/yr Social Security, spending $80k now and $70k in retirement.
func singleProfile() *domain.HouseholdProfile {
	return &domain.HouseholdProfile{
		Persons: []domain.Person{{
			Name:                 "alex",
			BirthDate:            date(1965, 5, 15),
			RetirementDate:       date(2030, 7, 2),
			LifeExpectancy:       90,
			SocialSecurityAnnual: decimal.NewFromInt(30000),
		}},
		IncomeStreams: []domain.IncomeStream{{
			Name:      "salary",
			Category:  domain.StreamSalary,
			Amount:    decimal.NewFromInt(120000),
			Frequency: domain.Annual,
			Start:     date(2000, 1, 1),
			Owner:     "alex",
		}},
		Accounts: []domain.AssetAccount{
			{
				Name:     "brokerage",
				Category: domain.Taxable,
				Balance:  decimal.NewFromInt(500000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.6),
					Bond:  decimal.NewFromFloat(0.4),
				},
			},
			{
				Name:     "401k",
				Category: domain.TaxDeferred,
				Balance:  decimal.NewFromInt(800000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.7),
					Bond:  decimal.NewFromFloat(0.3),
				},
			},
			{
				Name:     "roth ira",
				Category: domain.Roth,
				Balance:  decimal.NewFromInt(200000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.8),
					Bond:  decimal.NewFromFloat(0.2),
				},
			},
		},
		Budget: domain.BudgetSchedule{
			Items: []domain.ExpenseItem{{
				Category:  "living",
				Frequency: domain.Annual,
				Current:   decimal.NewFromInt(80000),
				Future:    decimal.NewFromInt(70000),
			}},
		},
	}
}

// coupleProfile staggers two retirements five years apart.
func coupleProfile() *domain.HouseholdProfile {
	profile := singleProfile()
	profile.Persons = append(profile.Persons, domain.Person{
		Name:                 "sam",
		BirthDate:            date(1968, 2, 1),
		RetirementDate:       date(2035, 1, 1),
		LifeExpectancy:       92,
		SocialSecurityAnnual: decimal.NewFromInt(24000),
	})
	return profile
}

// depletedProfile has a retiree with a tiny portfolio and no income, so every
// path fails almost immediately.
func depletedProfile() *domain.HouseholdProfile {
	return &domain.HouseholdProfile{
		Persons: []domain.Person{{
			Name:           "pat",
			BirthDate:      date(1955, 1, 1),
			RetirementDate: date(2010, 1, 1),
			LifeExpectancy: 95,
		}},
		Accounts: []domain.AssetAccount{{
			Name:     "savings",
			Category: domain.Taxable,
			Balance:  decimal.NewFromInt(10000),
			Allocation: domain.Allocation{
				Stock: decimal.NewFromFloat(0.5),
				Bond:  decimal.NewFromFloat(0.5),
			},
		}},
		Budget: domain.BudgetSchedule{
			Items: []domain.ExpenseItem{{
				Category:  "living",
				Frequency: domain.Annual,
				Current:   decimal.NewFromInt(60000),
				Future:    decimal.NewFromInt(60000),
			}},
		},
	}
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }

func decimal100k() decimal.Decimal { return decimal.NewFromInt(100000) }

func zeroVolAssumptions() domain.MarketAssumptions {
	return domain.MarketAssumptions{
		Name:          "flat",
		StockMean:     0.07,
		BondMean:      0.03,
		InflationMean: 0.02,
	}
}
