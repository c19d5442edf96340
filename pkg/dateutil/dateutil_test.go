package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	birth := d(1970, 6, 15)
	assert.Equal(t, 54, Age(birth, d(2025, 6, 14)))
	assert.Equal(t, 55, Age(birth, d(2025, 6, 15)))
	assert.Equal(t, 55, Age(birth, d(2025, 12, 31)))
}

func TestAgeInYear(t *testing.T) {
	birth := d(1970, 6, 15)
	// Calendar-year convention: the age attained during the year, regardless
	// of the birthday's position in it.
	assert.Equal(t, 55, AgeInYear(birth, 2025))
	assert.Equal(t, 0, AgeInYear(birth, 1970))
}

func TestGetRMDAge(t *testing.T) {
	assert.Equal(t, 72, GetRMDAge(1949))
	assert.Equal(t, 72, GetRMDAge(1950))
	assert.Equal(t, 73, GetRMDAge(1951))
	assert.Equal(t, 73, GetRMDAge(1959))
	assert.Equal(t, 75, GetRMDAge(1960))
	assert.Equal(t, 75, GetRMDAge(1985))
}

func TestIsRMDYear(t *testing.T) {
	birth := d(1950, 3, 1)
	assert.False(t, IsRMDYear(birth, 2021))
	assert.True(t, IsRMDYear(birth, 2022)) // attains 72
	assert.True(t, IsRMDYear(birth, 2030))

	later := d(1960, 3, 1)
	assert.False(t, IsRMDYear(later, 2034))
	assert.True(t, IsRMDYear(later, 2035)) // attains 75
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.False(t, IsLeapYear(2025))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2000))
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2025))
}

func TestFractionOfYearAfter(t *testing.T) {
	assert.Equal(t, 1.0, FractionOfYearAfter(d(2024, 5, 1), 2025))
	assert.Equal(t, 0.0, FractionOfYearAfter(d(2026, 5, 1), 2025))
	assert.Equal(t, 1.0, FractionOfYearAfter(d(2025, 1, 1), 2025))
	assert.InDelta(t, 183.0/365.0, FractionOfYearAfter(d(2025, 7, 2), 2025), 1e-9)
}

func TestFractionOfYearBefore(t *testing.T) {
	assert.Equal(t, 0.0, FractionOfYearBefore(d(2025, 1, 1), 2025))
	assert.InDelta(t, 182.0/365.0, FractionOfYearBefore(d(2025, 7, 2), 2025), 1e-9)
	assert.Equal(t, 1.0, FractionOfYearBefore(d(2026, 1, 1), 2025))
}

func TestOverlapFraction(t *testing.T) {
	// Open-ended window covering the whole year.
	assert.InDelta(t, 1.0, OverlapFraction(d(2020, 1, 1), nil, 2025), 1e-9)

	// Window entirely before the year.
	end := d(2024, 12, 31)
	assert.Equal(t, 0.0, OverlapFraction(d(2020, 1, 1), &end, 2025))

	// Window starting mid-year.
	assert.InDelta(t, 183.0/365.0, OverlapFraction(d(2025, 7, 2), nil, 2025), 1e-9)

	// Inclusive end date: a window ending Dec 31 covers the full year.
	endOfYear := d(2025, 12, 31)
	assert.InDelta(t, 1.0, OverlapFraction(d(2020, 1, 1), &endOfYear, 2025), 1e-9)

	// Half-year window, end date inclusive.
	july1 := d(2025, 7, 1)
	assert.InDelta(t, 182.0/365.0, OverlapFraction(d(2025, 1, 1), &july1, 2025), 1e-9)
}

func TestBeginningAndEndOfYear(t *testing.T) {
	assert.Equal(t, d(2025, 1, 1), BeginningOfYear(2025))
	assert.Equal(t, 2025, EndOfYear(2025).Year())
	assert.Equal(t, time.December, EndOfYear(2025).Month())
	assert.Equal(t, 31, EndOfYear(2025).Day())
}
