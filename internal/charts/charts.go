// Package charts assembles the outputs of the aggregation pipeline into
// named, chart-ready dataset bundles. Bundles carry axis labels, value
// series and pre-formatted summary strings; they carry no presentation
// styling and are never modified after assembly.
package charts

import (
	"time"

	"sharptoken/internal/core"
)

// Bundle names. Every chart the frontend draws is fed by exactly one of
// these.
const (
	MonthlyTokenTotals         = "monthly-token-totals"
	MonthlyTokensBySource      = "monthly-tokens-by-source"
	LifetimeTokensBySource     = "lifetime-tokens-by-source"
	MonthlyWalletsByPlatform   = "monthly-wallets-by-platform"
	WalletPlatformBreakdown    = "wallet-platform-breakdown"
	MonthlyReferralsByCampaign = "monthly-referrals-by-campaign"
	MonthlyReferralTotals      = "monthly-referral-totals"
	MonthlyFeeTrend            = "monthly-fee-trend"
)

type (
	// Series is one y-axis sequence tagged with its category label. Values
	// are whole units (fractional only for POL fees), aligned to the
	// bundle's x-axis labels.
	Series struct {
		Label  string    `json:"label"`
		Values []float64 `json:"values"`
	}

	// ChartDataset is one named bundle: an x-axis label sequence, one or
	// more series, and precomputed summary numbers intended only for title
	// and label text.
	ChartDataset struct {
		Name    string   `json:"name"`
		Title   string   `json:"title"`
		XLabels []string `json:"xLabels"`
		Series  []Series `json:"series"`
		// MonthTotals carries per-month totals across all series, used for
		// the total labels above stacked bars. Empty for single-series and
		// categorical bundles.
		MonthTotals []float64 `json:"monthTotals,omitempty"`
		GrandTotal  float64   `json:"grandTotal"`
		// Summary is the pre-formatted total line (thousands separators)
		// ready for title text.
		Summary string `json:"summary"`
	}

	// DomainResult bundles one domain's pipeline outputs for assembly.
	// Dataset and Buckets are the post-window values; Lifetime holds the
	// totals over the unfiltered dataset, which the lifetime-by-source
	// chart reports.
	DomainResult struct {
		Domain   core.Domain
		Dataset  core.Dataset
		Buckets  []core.MonthBucket
		Totals   core.TotalsSummary
		Lifetime core.TotalsSummary
	}

	// Dashboard is the full assembled bundle set. It is computed once and
	// read-only afterwards, so it may be shared across any number of
	// concurrent readers without synchronization.
	Dashboard struct {
		GeneratedAt time.Time      `json:"generatedAt"`
		Charts      []ChartDataset `json:"charts"`
	}
)

// Chart returns the bundle with the given name.
func (d *Dashboard) Chart(name string) (ChartDataset, bool) {
	for _, c := range d.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return ChartDataset{}, false
}

// Names returns the bundle names in assembly order.
func (d *Dashboard) Names() []string {
	names := make([]string, len(d.Charts))
	for i, c := range d.Charts {
		names[i] = c.Name
	}
	return names
}
