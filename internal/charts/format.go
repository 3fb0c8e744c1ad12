package charts

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"sharptoken/internal/core"
)

// monthLabelLayout renders bucket months for x-axis labels.
const monthLabelLayout = "January 2006"

// formatWhole renders an amount as a whole-unit count with thousands
// separators. Totals are displayed as whole units throughout the dashboard.
func formatWhole(a core.Amount) string {
	return humanize.Comma(a.Whole())
}

// totalSummary builds the plain "Total: N" label line.
func totalSummary(grand core.Amount) string {
	return fmt.Sprintf("Total: %s", formatWhole(grand))
}

// breakdownSummary builds the "Total: N | A: x | B: y" label line used by the
// wallet bundles, one segment per category in declared order.
func breakdownSummary(sum core.TotalsSummary) string {
	parts := make([]string, 0, len(sum.ByCategory)+1)
	parts = append(parts, totalSummary(sum.Grand))
	for _, ct := range sum.ByCategory {
		parts = append(parts, fmt.Sprintf("%s: %s", ct.Category, formatWhole(ct.Total)))
	}
	return strings.Join(parts, " | ")
}

func monthLabels(buckets []core.MonthBucket) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Month.Format(monthLabelLayout)
	}
	return labels
}

func monthTotalValues(sum core.TotalsSummary) []float64 {
	values := make([]float64, len(sum.ByMonth))
	for i, mt := range sum.ByMonth {
		values[i] = mt.Total.Units()
	}
	return values
}

func categoryValues(sum core.TotalsSummary) []float64 {
	values := make([]float64, len(sum.ByCategory))
	for i, ct := range sum.ByCategory {
		values[i] = ct.Total.Units()
	}
	return values
}

func categoryNames(sum core.TotalsSummary) []string {
	names := make([]string, len(sum.ByCategory))
	for i, ct := range sum.ByCategory {
		names[i] = ct.Category
	}
	return names
}

// bucketSeries builds one series per category, values aligned to the bucket
// sequence, in declared category order.
func bucketSeries(buckets []core.MonthBucket, categories []string) []Series {
	series := make([]Series, 0, len(categories))
	for _, c := range categories {
		values := make([]float64, len(buckets))
		for i, b := range buckets {
			values[i] = b.Sum(c).Units()
		}
		series = append(series, Series{Label: c, Values: values})
	}
	return series
}
