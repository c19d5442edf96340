package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retirewise/planner/internal/domain"
)

func TestLoadProfile(t *testing.T) {
	content := `
persons:
  - name: alex
    birth_date: 1978-04-12T00:00:00Z
    retirement_date: 2043-06-30T00:00:00Z
    life_expectancy: 95
    social_security_annual: "32000"
income_streams:
  - name: alex salary
    category: salary
    amount: "105000"
    frequency: annual
    start: 2020-01-01T00:00:00Z
    owner: alex
accounts:
  - name: brokerage
    category: taxable
    balance: "120000"
    allocation:
      stock: "0.7"
      bond: "0.25"
      cash: "0.05"
budget:
  items:
    - category: living
      frequency: monthly
      current: "5000"
      future: "4500"
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	parser := NewInputParser()
	profile, err := parser.LoadProfile(path)
	require.NoError(t, err)

	require.Len(t, profile.Persons, 1)
	assert.Equal(t, "alex", profile.Persons[0].Name)
	assert.Equal(t, 95, profile.Persons[0].LifeExpectancy)

	require.Len(t, profile.Accounts, 1)
	assert.Equal(t, domain.Taxable, profile.Accounts[0].Category)
	assert.True(t, profile.Accounts[0].Balance.Equal(profile.BalanceByCategory(domain.Taxable)))

	require.Len(t, profile.IncomeStreams, 1)
	assert.Equal(t, domain.StreamSalary, profile.IncomeStreams[0].Category)
}

func TestLoadProfileMissingFile(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadProfile("nonexistent.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadProfileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persons: [not: valid: yaml"), 0o644))

	parser := NewInputParser()
	_, err := parser.LoadProfile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadProfileValidationFailure(t *testing.T) {
	// Allocation sums to 1.5, which must be rejected at the boundary.
	content := `
persons:
  - name: alex
    birth_date: 1978-04-12T00:00:00Z
    retirement_date: 2043-06-30T00:00:00Z
accounts:
  - name: brokerage
    category: taxable
    balance: "100000"
    allocation:
      stock: "1.0"
      bond: "0.5"
budget:
  items:
    - category: living
      frequency: annual
      current: "50000"
      future: "45000"
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	parser := NewInputParser()
	_, err := parser.LoadProfile(path)
	require.Error(t, err)
	var perr *domain.InvalidProfileError
	assert.ErrorAs(t, err, &perr)
}

func TestExampleProfileIsValid(t *testing.T) {
	parser := NewInputParser()
	profile := parser.ExampleProfile()
	require.NoError(t, profile.Validate())
	assert.Len(t, profile.Persons, 2)
	assert.True(t, profile.BalanceByCategory(domain.TaxDeferred).IsPositive())
}

func TestWriteExampleProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	parser := NewInputParser()
	require.NoError(t, parser.WriteExampleProfile(path))

	loaded, err := parser.LoadProfile(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Persons, 2)
	assert.Len(t, loaded.Accounts, 3)
}

func TestResolveAssumptions(t *testing.T) {
	parser := NewInputParser()

	preset, err := parser.ResolveAssumptions("historical")
	require.NoError(t, err)
	assert.Equal(t, "historical", preset.Name)

	_, err = parser.ResolveAssumptions("no-such-preset")
	require.Error(t, err)
	var cerr *domain.SimulationConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestLoadAssumptionsFromFile(t *testing.T) {
	content := `
name: my-outlook
stock_mean: 0.08
stock_std_dev: 0.16
bond_mean: 0.04
bond_std_dev: 0.05
inflation_mean: 0.025
inflation_std_dev: 0.012
stock_bond_correlation: -0.2
`
	path := filepath.Join(t.TempDir(), "assumptions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	parser := NewInputParser()
	got, err := parser.ResolveAssumptions(path)
	require.NoError(t, err)
	assert.Equal(t, "my-outlook", got.Name)
	assert.InDelta(t, 0.08, got.StockMean, 1e-12)
	assert.InDelta(t, -0.2, got.StockBondCorrelation, 1e-12)
}
