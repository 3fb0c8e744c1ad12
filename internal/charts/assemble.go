package charts

import (
	"fmt"
	"time"

	"sharptoken/internal/core"
)

// Assemble composes the per-domain pipeline outputs into the fixed bundle
// set. All four domains must be present; the dashboard's totals reference
// each other across charts, so a partial assembly is never produced. A
// domain with zero categories or zero buckets still assembles into an empty
// bundle rather than failing.
func Assemble(results map[core.Domain]DomainResult) (*Dashboard, error) {
	for _, spec := range core.DomainSpecs {
		if _, ok := results[spec.Domain]; !ok {
			return nil, fmt.Errorf("assemble dashboard: missing %s result", spec.Domain)
		}
	}

	tokens := results[core.DomainTokens]
	wallets := results[core.DomainWallets]
	referrals := results[core.DomainReferrals]
	fees := results[core.DomainFees]

	d := &Dashboard{GeneratedAt: time.Now().UTC()}
	d.Charts = append(d.Charts,
		totalTrendChart(MonthlyTokenTotals, "Monthly Token Distribution", tokens),
		stackedMonthlyChart(MonthlyTokensBySource, "Monthly Tokens by Source", tokens),
		lifetimeChart(LifetimeTokensBySource, "Total Tokens by Source", tokens),
		groupedMonthlyChart(MonthlyWalletsByPlatform, "Monthly Wallet Creation by Platform", wallets),
		categoryBreakdownChart(WalletPlatformBreakdown, "Wallet Platform Distribution", wallets),
		stackedMonthlyChart(MonthlyReferralsByCampaign, "Monthly Referrals by Source", referrals),
		totalTrendChart(MonthlyReferralTotals, "Monthly Total Referrals Over Time", referrals),
		feeTrendChart(MonthlyFeeTrend, "Transaction Fee Trends by Month", fees),
	)
	return d, nil
}

// totalTrendChart carries one derived "Total" series: the per-month sum
// across every category. The stored Total column, when the sheet has one, is
// excluded upstream so nothing is counted twice.
func totalTrendChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:       name,
		Title:      title,
		XLabels:    monthLabels(r.Buckets),
		Series:     []Series{{Label: "Total", Values: monthTotalValues(r.Totals)}},
		GrandTotal: r.Totals.Grand.Units(),
		Summary:    totalSummary(r.Totals.Grand),
	}
}

// stackedMonthlyChart carries one series per category plus the per-month
// totals used to label the top of each stacked bar.
func stackedMonthlyChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:        name,
		Title:       title,
		XLabels:     monthLabels(r.Buckets),
		Series:      bucketSeries(r.Buckets, r.Dataset.Categories),
		MonthTotals: monthTotalValues(r.Totals),
		GrandTotal:  r.Totals.Grand.Units(),
		Summary:     totalSummary(r.Totals.Grand),
	}
}

// groupedMonthlyChart is the wallet bar chart: per-platform series with the
// per-platform breakdown in the summary line.
func groupedMonthlyChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:       name,
		Title:      title,
		XLabels:    monthLabels(r.Buckets),
		Series:     bucketSeries(r.Buckets, r.Dataset.Categories),
		GrandTotal: r.Totals.Grand.Units(),
		Summary:    breakdownSummary(r.Totals),
	}
}

// categoryBreakdownChart puts categories on the x-axis with one value each,
// the shape a pie or donut renders from.
func categoryBreakdownChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:       name,
		Title:      title,
		XLabels:    categoryNames(r.Totals),
		Series:     []Series{{Label: "Total", Values: categoryValues(r.Totals)}},
		GrandTotal: r.Totals.Grand.Units(),
		Summary:    breakdownSummary(r.Totals),
	}
}

// lifetimeChart reports per-category totals over the unfiltered dataset:
// lifetime numbers ignore the window cutoff.
func lifetimeChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:       name,
		Title:      title,
		XLabels:    categoryNames(r.Lifetime),
		Series:     []Series{{Label: "Total Tokens", Values: categoryValues(r.Lifetime)}},
		GrandTotal: r.Lifetime.Grand.Units(),
		Summary:    totalSummary(r.Lifetime.Grand),
	}
}

// feeTrendChart is the single-category fee line; the summary names the unit.
func feeTrendChart(name, title string, r DomainResult) ChartDataset {
	return ChartDataset{
		Name:       name,
		Title:      title,
		XLabels:    monthLabels(r.Buckets),
		Series:     bucketSeries(r.Buckets, r.Dataset.Categories),
		GrandTotal: r.Totals.Grand.Units(),
		Summary:    fmt.Sprintf("%s POL", totalSummary(r.Totals.Grand)),
	}
}
