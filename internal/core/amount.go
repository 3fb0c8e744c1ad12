// Package core implements the aggregation pipeline that turns raw workbook
// tables into monthly buckets, long-form pivots and totals summaries.
//
// This file contains fixed-point amount parsing and arithmetic. All pipeline
// sums are exact int64 math in thousandths of a unit; conversion to floating
// point happens only at the presentation boundary.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Amount is a numeric cell value in thousandths of a unit. Token, wallet and
// referral counts are whole units; POL transaction fees may carry up to three
// decimal places, which thousandths represent without rounding drift across
// sums.
type Amount struct {
	Milli int64
}

// ParseAmount converts a numeric cell string to thousandths with half-up
// rounding on the fourth decimal place. It accepts an optional leading minus
// and both dot and comma decimal separators. An empty cell parses as zero:
// sparse sheets leave blanks where a category had no events that day.
//
// The bool result reports whether the cell is numeric at all; category
// detection relies on it to decide column eligibility.
func ParseAmount(s string) (Amount, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, true
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Amount{}, false
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		// A bare separator is not a number.
		return Amount{}, false
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Amount{}, false
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Amount{}, false
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Amount{}, false
	}
	const maxSafeInt64 = (1<<63 - 1) / 1000
	if iv > maxSafeInt64 {
		return Amount{}, false
	}
	// First three fractional digits, half-up on the fourth.
	var fracMilli int64
	scale := int64(100)
	for i := 0; i < len(fracPart) && i < 3; i++ {
		fracMilli += int64(fracPart[i]-'0') * scale
		scale /= 10
	}
	if len(fracPart) > 3 && fracPart[3] >= '5' {
		fracMilli++
	}
	milli := iv*1000 + fracMilli
	if neg {
		milli = -milli
	}
	return Amount{Milli: milli}, true
}

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{Milli: a.Milli + b.Milli}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Milli == 0
}

// Units returns the amount in whole units as a float64 for display purposes.
// Use Milli for calculations.
func (a Amount) Units() float64 {
	return float64(a.Milli) / 1000.0
}

// Whole returns the amount truncated to whole units, matching how counts are
// displayed in summary labels.
func (a Amount) Whole() int64 {
	return a.Milli / 1000
}
