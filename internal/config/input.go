package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/retirewise/planner/internal/domain"
)

// InputParser handles parsing of household profile and assumption files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a household profile from a YAML file and validates it
// before returning. Validation failures surface as *domain.InvalidProfileError
// and no simulation work is performed.
func (ip *InputParser) LoadProfile(filename string) (*domain.HouseholdProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.HouseholdProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// LoadAssumptions loads a custom market assumption set from a YAML file.
func (ip *InputParser) LoadAssumptions(filename string) (domain.MarketAssumptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.MarketAssumptions{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var assumptions domain.MarketAssumptions
	if err := yaml.Unmarshal(data, &assumptions); err != nil {
		return domain.MarketAssumptions{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if assumptions.Name == "" {
		assumptions.Name = "custom"
	}
	if err := assumptions.Validate(); err != nil {
		return domain.MarketAssumptions{}, err
	}
	return assumptions, nil
}

// ResolveAssumptions returns a named built-in preset, or loads a custom set
// when the name refers to an existing file.
func (ip *InputParser) ResolveAssumptions(nameOrPath string) (domain.MarketAssumptions, error) {
	if preset, err := domain.PresetByName(nameOrPath); err == nil {
		return preset, nil
	}
	if _, statErr := os.Stat(nameOrPath); statErr == nil {
		return ip.LoadAssumptions(nameOrPath)
	}
	return domain.MarketAssumptions{}, &domain.SimulationConfigError{
		Field:  "market_preset",
		Reason: fmt.Sprintf("%q is neither a built-in preset nor a readable file", nameOrPath),
	}
}

// ExampleProfile creates a representative two-person household profile,
// used by the `example` subcommand to bootstrap an input file.
func (ip *InputParser) ExampleProfile() *domain.HouseholdProfile {
	birthAlex, _ := time.Parse("2006-01-02", "1978-04-12")
	birthSam, _ := time.Parse("2006-01-02", "1980-09-03")
	retireAlex, _ := time.Parse("2006-01-02", "2043-06-30")
	retireSam, _ := time.Parse("2006-01-02", "2045-01-01")

	return &domain.HouseholdProfile{
		Persons: []domain.Person{
			{
				Name:                 "alex",
				BirthDate:            birthAlex,
				RetirementDate:       retireAlex,
				LifeExpectancy:       95,
				SocialSecurityAnnual: decimal.NewFromInt(32000),
				PensionAnnual:        decimal.NewFromInt(12000),
			},
			{
				Name:                 "sam",
				BirthDate:            birthSam,
				RetirementDate:       retireSam,
				LifeExpectancy:       95,
				SocialSecurityAnnual: decimal.NewFromInt(28000),
			},
		},
		IncomeStreams: []domain.IncomeStream{
			{
				Name:      "alex salary",
				Category:  domain.StreamSalary,
				Amount:    decimal.NewFromInt(8750),
				Frequency: domain.Monthly,
				Start:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Owner:     "alex",
			},
			{
				Name:      "sam salary",
				Category:  domain.StreamSalary,
				Amount:    decimal.NewFromInt(90000),
				Frequency: domain.Annual,
				Start:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Owner:     "sam",
			},
		},
		Accounts: []domain.AssetAccount{
			{
				Name:     "joint brokerage",
				Category: domain.Taxable,
				Balance:  decimal.NewFromInt(120000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.7),
					Bond:  decimal.NewFromFloat(0.25),
					Cash:  decimal.NewFromFloat(0.05),
				},
			},
			{
				Name:     "alex 401k",
				Category: domain.TaxDeferred,
				Balance:  decimal.NewFromInt(380000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.8),
					Bond:  decimal.NewFromFloat(0.2),
				},
			},
			{
				Name:     "sam roth ira",
				Category: domain.Roth,
				Balance:  decimal.NewFromInt(95000),
				Allocation: domain.Allocation{
					Stock: decimal.NewFromFloat(0.9),
					Bond:  decimal.NewFromFloat(0.1),
				},
			},
		},
		Budget: domain.BudgetSchedule{
			Items: []domain.ExpenseItem{
				{
					Category:  "housing",
					Frequency: domain.Monthly,
					Current:   decimal.NewFromInt(3200),
					Future:    decimal.NewFromInt(2400),
				},
				{
					Category:  "living",
					Frequency: domain.Monthly,
					Current:   decimal.NewFromInt(3800),
					Future:    decimal.NewFromInt(3400),
				},
				{
					Category:  "travel",
					Frequency: domain.Annual,
					Current:   decimal.NewFromInt(6000),
					Future:    decimal.NewFromInt(12000),
				},
			},
		},
	}
}

// WriteExampleProfile writes the example profile as YAML to the given path.
func (ip *InputParser) WriteExampleProfile(filename string) error {
	data, err := yaml.Marshal(ip.ExampleProfile())
	if err != nil {
		return fmt.Errorf("failed to marshal example profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
