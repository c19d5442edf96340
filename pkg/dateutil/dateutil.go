package dateutil

import (
	"time"
)

// Age calculates the age at a given date.
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeInYear returns the age a person attains during the given calendar year.
// This is the convention used for RMD applicability and spending-curve lookup.
func AgeInYear(birthDate time.Time, year int) int {
	return year - birthDate.Year()
}

// GetRMDAge returns the age at which required minimum distributions start for
// a given birth year (SECURE 2.0 Act schedule).
func GetRMDAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear >= 1951 && birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}

// IsRMDYear reports whether required minimum distributions apply in the given
// calendar year for a person with this birth date.
func IsRMDYear(birthDate time.Time, year int) bool {
	return AgeInYear(birthDate, year) >= GetRMDAge(birthDate.Year())
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// BeginningOfYear returns January 1st of the given year, UTC.
func BeginningOfYear(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns the last instant of December 31st of the given year, UTC.
func EndOfYear(year int) time.Time {
	return time.Date(year, 12, 31, 23, 59, 59, 999999999, time.UTC)
}

// FractionOfYearAfter returns the fraction of the calendar year that falls on
// or after the given date. Dates before the year return 1, after it return 0.
func FractionOfYearAfter(date time.Time, year int) float64 {
	if date.Year() < year {
		return 1
	}
	if date.Year() > year {
		return 0
	}
	days := yearEndExclusive(year).Sub(date).Hours() / 24
	return days / float64(DaysInYear(year))
}

// FractionOfYearBefore returns the fraction of the calendar year that falls
// strictly before the given date.
func FractionOfYearBefore(date time.Time, year int) float64 {
	return 1 - FractionOfYearAfter(date, year)
}

// OverlapFraction returns the fraction of the calendar year covered by the
// window [start, end]. A nil end means the window is open-ended.
func OverlapFraction(start time.Time, end *time.Time, year int) float64 {
	from := FractionOfYearBefore(start, year)
	to := 1.0
	if end != nil {
		to = FractionOfYearBefore(end.AddDate(0, 0, 1), year)
	}
	if to <= from {
		return 0
	}
	return to - from
}

func yearEndExclusive(year int) time.Time {
	return time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)
}
