package util

import (
	"fmt"
	"strconv"
	"time"
)

// DaysInMonth returns the number of days in the given month, leap years included
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first instant of the month and the first instant of
// the following month in loc
func MonthBounds(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the year and month for the following month
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// ParseYearMonth parses optional year and month strings, defaulting each to
// the corresponding part of now. Month is 1-based.
func ParseYearMonth(yearStr, monthStr string, now time.Time) (int, time.Month, error) {
	year := now.Year()
	month := now.Month()

	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 || y > 9999 {
			return 0, 0, fmt.Errorf("invalid year %q", yearStr)
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", monthStr)
		}
		month = time.Month(m)
	}
	return year, month, nil
}
