package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Domain identifies one of the four source tables of the workbook.
	Domain string

	// Date is a calendar date at day granularity. The time-of-day component
	// is always UTC midnight; comparisons never look below the day.
	Date struct {
		time.Time
	}

	// Table is a raw worksheet as delivered by a workbook adapter: a header
	// of field names and rows of string cells aligned to that header. Cells
	// beyond the header width are ignored; missing trailing cells read as "".
	Table struct {
		Name   string
		Fields []string
		Rows   [][]string
	}

	// TableSpec describes how one domain table is read and filtered. The
	// date layout and the cutoff semantics differ across domains and are
	// fixed constants, not runtime parameters.
	TableSpec struct {
		Domain     Domain
		Sheet      string
		DateField  string
		DateLayout string
		// Excluded lists fields never eligible as categories, beyond the
		// date field itself (e.g. a stored "Total" column, to avoid double
		// counting).
		Excluded []string
		Cutoff   Date
		// CutoffExclusive selects strictly-after semantics; otherwise the
		// filter is on-or-after.
		CutoffExclusive bool
	}

	// Record is one normalized event: a calendar date plus the parsed value
	// of every detected category field.
	Record struct {
		Date   Date
		Values map[string]Amount
	}

	// Dataset is an ordered sequence of records plus the category list
	// detected for it. It is immutable once built; pipeline stages return
	// new Datasets rather than mutating their input.
	Dataset struct {
		Domain     Domain
		Categories []string
		Records    []Record
		// Dropped counts source rows excluded because their date did not
		// parse. Kept as an observability signal; the drop itself is silent.
		Dropped int
	}

	// MonthBucket holds the per-category sums for one calendar month.
	// Month is the first day of the month.
	MonthBucket struct {
		Month Date
		Sums  map[string]Amount
	}

	// PivotRow is the long-form representation of one (month, category)
	// cell of a bucket sequence.
	PivotRow struct {
		Month    Date
		Category string
		Value    Amount
	}

	// CategoryTotal pairs a category with its total over the whole window.
	CategoryTotal struct {
		Category string
		Total    Amount
	}

	// MonthTotal pairs a month with its total across all categories.
	MonthTotal struct {
		Month Date
		Total Amount
	}

	// TotalsSummary carries the derived sums used for display labels.
	// Grand equals the sum of ByCategory, which equals the sum of ByMonth.
	TotalsSummary struct {
		ByCategory []CategoryTotal
		ByMonth    []MonthTotal
		Grand      Amount
	}
)

const (
	DomainTokens    Domain = "tokens"
	DomainWallets   Domain = "wallets"
	DomainReferrals Domain = "referrals"
	DomainFees      Domain = "fees"
)

var ErrMissingDateField = errors.New("date field not present in table header")

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s with the given layout and truncates any time-of-day
// component. A layout with a trailing time part is also accepted, so
// datetime-formatted cells still normalize to a plain calendar date.
// The bool result reports success; unparsable input is not an error here,
// callers drop such rows per the lenient-cleaning contract.
func ParseDate(s, layout string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		t, err = time.Parse(layout+" 15:04:05", s)
		if err != nil {
			return Date{}, false
		}
	}
	y, m, d := t.Date()
	return NewDate(y, int(m), d), true
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date {
	y, m, _ := d.Date()
	return NewDate(y, int(m), 1)
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Cell returns the cell at row i, field col, or "" when the row is ragged.
func (t Table) Cell(i int, col int) string {
	if col < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// FieldIndex returns the position of name in the header, or -1.
func (t Table) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Value returns the record's amount for a category, zero when absent.
func (r Record) Value(category string) Amount {
	return r.Values[category]
}

// Sum returns the bucket's amount for a category, zero when absent.
func (b MonthBucket) Sum(category string) Amount {
	return b.Sums[category]
}

// CategoryTotal returns the summary's total for one category, zero when the
// category is unknown.
func (t TotalsSummary) CategoryTotal(name string) Amount {
	for _, ct := range t.ByCategory {
		if ct.Category == name {
			return ct.Total
		}
	}
	return Amount{}
}
