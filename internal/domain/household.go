package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory classifies an asset account by its withdrawal/tax treatment.
// The category is fixed at ingestion time; the engine never inspects account
// names or free-form type strings.
type AccountCategory int

const (
	Taxable AccountCategory = iota
	TaxDeferred
	Roth
)

// String returns the canonical identifier for the category.
func (c AccountCategory) String() string {
	switch c {
	case Taxable:
		return "taxable"
	case TaxDeferred:
		return "tax_deferred"
	case Roth:
		return "roth"
	default:
		return "unknown"
	}
}

// ParseAccountCategory maps a serialized category identifier to the closed enum.
func ParseAccountCategory(s string) (AccountCategory, error) {
	switch s {
	case "taxable":
		return Taxable, nil
	case "tax_deferred":
		return TaxDeferred, nil
	case "roth":
		return Roth, nil
	default:
		return Taxable, fmt.Errorf("unknown account category %q", s)
	}
}

// UnmarshalYAML decodes an account category from its string form.
func (c *AccountCategory) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseAccountCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes an account category as its string form.
func (c AccountCategory) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Frequency describes how often a recurring amount recurs.
type Frequency string

const (
	Annual    Frequency = "annual"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
)

// AnnualizedFactor returns the multiplier that converts one occurrence of the
// amount into an annual total.
func (f Frequency) AnnualizedFactor() (decimal.Decimal, error) {
	switch f {
	case Annual, "":
		return decimal.NewFromInt(1), nil
	case Monthly:
		return decimal.NewFromInt(12), nil
	case Quarterly:
		return decimal.NewFromInt(4), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown frequency %q", f)
	}
}

// StreamCategory classifies an income stream.
type StreamCategory string

const (
	StreamSalary     StreamCategory = "salary"
	StreamConsulting StreamCategory = "consulting"
	StreamRental     StreamCategory = "rental"
	StreamOther      StreamCategory = "other"
)

// IsWork reports whether the stream represents earned income that stops at
// the owner's retirement.
func (c StreamCategory) IsWork() bool {
	return c == StreamSalary || c == StreamConsulting
}

// Person is one member of the household.
type Person struct {
	Name           string    `yaml:"name"`
	BirthDate      time.Time `yaml:"birth_date"`
	RetirementDate time.Time `yaml:"retirement_date"`
	// LifeExpectancy is the age through which this person's expenses are
	// projected. Zero means use the default horizon.
	LifeExpectancy int `yaml:"life_expectancy"`

	// Guaranteed annual benefits, in today's dollars, that begin at this
	// person's retirement date.
	SocialSecurityAnnual decimal.Decimal `yaml:"social_security_annual"`
	PensionAnnual        decimal.Decimal `yaml:"pension_annual"`
}

// DefaultLifeExpectancy is applied when a person does not specify one.
const DefaultLifeExpectancy = 95

// IncomeStream is a dated income source such as a salary or rental income.
type IncomeStream struct {
	Name      string          `yaml:"name"`
	Category  StreamCategory  `yaml:"category"`
	Amount    decimal.Decimal `yaml:"amount"`
	Frequency Frequency       `yaml:"frequency"`
	Start     time.Time       `yaml:"start"`
	End       *time.Time      `yaml:"end"`
	// Owner names the household member whose retirement ends a work-category
	// stream. Empty means the stream is not tied to anyone's employment.
	Owner string `yaml:"owner"`
}

// Allocation is the stock/bond/cash split of one account. Fractions sum to 1.
type Allocation struct {
	Stock decimal.Decimal `yaml:"stock"`
	Bond  decimal.Decimal `yaml:"bond"`
	Cash  decimal.Decimal `yaml:"cash"`
}

// Sum returns the total of all allocation fractions.
func (a Allocation) Sum() decimal.Decimal {
	return a.Stock.Add(a.Bond).Add(a.Cash)
}

// AssetAccount is one investable account bucketed into a withdrawal category.
type AssetAccount struct {
	Name       string          `yaml:"name"`
	Category   AccountCategory `yaml:"category"`
	Balance    decimal.Decimal `yaml:"balance"`
	Allocation Allocation      `yaml:"allocation"`
}

// ExpenseItem is one recurring budget line with pre- and post-retirement
// amounts, in today's dollars.
type ExpenseItem struct {
	Category  string          `yaml:"category"`
	Frequency Frequency       `yaml:"frequency"`
	Start     *time.Time      `yaml:"start"`
	End       *time.Time      `yaml:"end"`
	Current   decimal.Decimal `yaml:"current"`
	Future    decimal.Decimal `yaml:"future"`
}

// ActiveInYear reports whether the item's date window overlaps the calendar year.
func (e ExpenseItem) ActiveInYear(year int) bool {
	if e.Start != nil && e.Start.Year() > year {
		return false
	}
	if e.End != nil && e.End.Year() < year {
		return false
	}
	return true
}

// BudgetSchedule is the household's recurring expense plan.
type BudgetSchedule struct {
	Items []ExpenseItem `yaml:"items"`
}

// HouseholdProfile is the full read-only input to a projection run.
type HouseholdProfile struct {
	Persons       []Person       `yaml:"persons"`
	IncomeStreams []IncomeStream `yaml:"income_streams"`
	Accounts      []AssetAccount `yaml:"accounts"`
	Budget        BudgetSchedule `yaml:"budget"`
}

// Primary returns the first household member. The profile must have been
// validated, so at least one person exists.
func (p *HouseholdProfile) Primary() Person {
	return p.Persons[0]
}

// EarliestRetirementYear returns the calendar year in which the first
// household member retires.
func (p *HouseholdProfile) EarliestRetirementYear() int {
	year := p.Persons[0].RetirementDate.Year()
	for _, person := range p.Persons[1:] {
		if ry := person.RetirementDate.Year(); ry < year {
			year = ry
		}
	}
	return year
}

// RetiredCount returns how many household members are retired as of the given
// calendar year. A person counts as retired from their retirement year onward.
func (p *HouseholdProfile) RetiredCount(year int) int {
	n := 0
	for _, person := range p.Persons {
		if year >= person.RetirementDate.Year() {
			n++
		}
	}
	return n
}

// BalanceByCategory sums account balances for one withdrawal category.
func (p *HouseholdProfile) BalanceByCategory(c AccountCategory) decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Accounts {
		if a.Category == c {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// Validate checks the structural invariants of the profile. It returns an
// *InvalidProfileError describing the first violation found.
func (p *HouseholdProfile) Validate() error {
	if len(p.Persons) < 1 || len(p.Persons) > 2 {
		return &InvalidProfileError{Field: "persons", Reason: fmt.Sprintf("household must have one or two members, got %d", len(p.Persons))}
	}
	for i, person := range p.Persons {
		if person.BirthDate.IsZero() {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].birth_date", i), Reason: "birth date is required"}
		}
		if person.RetirementDate.IsZero() {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].retirement_date", i), Reason: "retirement date is required"}
		}
		if person.RetirementDate.Before(person.BirthDate) {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].retirement_date", i), Reason: "retirement date cannot precede birth date"}
		}
		if person.SocialSecurityAnnual.IsNegative() {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].social_security_annual", i), Reason: "cannot be negative"}
		}
		if person.PensionAnnual.IsNegative() {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].pension_annual", i), Reason: "cannot be negative"}
		}
		if person.LifeExpectancy < 0 {
			return &InvalidProfileError{Field: fmt.Sprintf("persons[%d].life_expectancy", i), Reason: "cannot be negative"}
		}
	}
	for i, stream := range p.IncomeStreams {
		if stream.Amount.IsNegative() {
			return &InvalidProfileError{Field: fmt.Sprintf("income_streams[%d].amount", i), Reason: "cannot be negative"}
		}
		if stream.End != nil && stream.End.Before(stream.Start) {
			return &InvalidProfileError{Field: fmt.Sprintf("income_streams[%d].end", i), Reason: "end date cannot precede start date"}
		}
		if _, err := stream.Frequency.AnnualizedFactor(); err != nil {
			return &InvalidProfileError{Field: fmt.Sprintf("income_streams[%d].frequency", i), Reason: err.Error()}
		}
		if stream.Owner != "" && !p.hasPerson(stream.Owner) {
			return &InvalidProfileError{Field: fmt.Sprintf("income_streams[%d].owner", i), Reason: fmt.Sprintf("no household member named %q", stream.Owner)}
		}
	}
	for i, account := range p.Accounts {
		if account.Balance.IsNegative() {
			return &InvalidProfileError{Field: fmt.Sprintf("accounts[%d].balance", i), Reason: "balance cannot be negative"}
		}
		if err := validateAllocation(account.Allocation); err != nil {
			return &InvalidProfileError{Field: fmt.Sprintf("accounts[%d].allocation", i), Reason: err.Error()}
		}
	}
	for i, item := range p.Budget.Items {
		if item.Current.IsNegative() || item.Future.IsNegative() {
			return &InvalidProfileError{Field: fmt.Sprintf("budget.items[%d]", i), Reason: "expense amounts cannot be negative"}
		}
		if item.End != nil && item.Start != nil && item.End.Before(*item.Start) {
			return &InvalidProfileError{Field: fmt.Sprintf("budget.items[%d].end", i), Reason: "end date cannot precede start date"}
		}
		if _, err := item.Frequency.AnnualizedFactor(); err != nil {
			return &InvalidProfileError{Field: fmt.Sprintf("budget.items[%d].frequency", i), Reason: err.Error()}
		}
	}
	return nil
}

// allocationTolerance absorbs rounding noise in allocation fractions.
var allocationTolerance = decimal.NewFromFloat(0.005)

func validateAllocation(a Allocation) error {
	if a.Stock.IsNegative() || a.Bond.IsNegative() || a.Cash.IsNegative() {
		return fmt.Errorf("allocation fractions cannot be negative")
	}
	diff := a.Sum().Sub(decimal.NewFromInt(1)).Abs()
	if diff.GreaterThan(allocationTolerance) {
		return fmt.Errorf("allocation fractions must sum to 1.0, got %s", a.Sum().StringFixed(4))
	}
	return nil
}

func (p *HouseholdProfile) hasPerson(name string) bool {
	for _, person := range p.Persons {
		if person.Name == name {
			return true
		}
	}
	return false
}
