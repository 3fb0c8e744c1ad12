package core

import (
	"reflect"
	"testing"
)

func walletTable() Table {
	return Table{
		Name:   "Wallets Created",
		Fields: []string{"Date", "Android", "iOS", "Web"},
		Rows: [][]string{
			{"2025-01-05", "3", "1", "0"},
			{"2025-01-20", "2", "0", "1"},
			{"2025-02-01", "0", "0", "5"},
		},
	}
}

func TestNormalizeDatesDropsUnparsable(t *testing.T) {
	tbl := Table{
		Name:   "Referrals",
		Fields: []string{"Date", "Twitter", "Discord"},
		Rows: [][]string{
			{"2025-01-02", "1", "2"},
			{"garbage", "9", "9"},
			{"2025-01-03", "3", "4"},
			{"", "9", "9"},
			{"2025-02-10", "5", "6"},
		},
	}
	clean, dates, dropped, err := NormalizeDates(tbl, "Date", "2006-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if len(clean.Rows) != 3 || len(dates) != 3 {
		t.Fatalf("kept %d rows / %d dates, want 3", len(clean.Rows), len(dates))
	}
	if dates[2] != NewDate(2025, 2, 10) {
		t.Fatalf("dates[2] = %v", dates[2])
	}
	// Totals over the retained subset only.
	ds, err := BuildDataset(tbl, TableSpec{Domain: DomainReferrals, DateField: "Date", DateLayout: "2006-01-02"})
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	sum := Totals(AggregateMonthly(ds), ds.Categories)
	if sum.Grand.Whole() != 21 { // 1+2+3+4+5+6
		t.Fatalf("grand = %d, want 21", sum.Grand.Whole())
	}
}

func TestNormalizeDatesMissingField(t *testing.T) {
	tbl := Table{Fields: []string{"Day", "Count"}, Rows: [][]string{{"2025-01-01", "1"}}}
	if _, _, _, err := NormalizeDates(tbl, "Date", "2006-01-02"); err != ErrMissingDateField {
		t.Fatalf("err = %v, want ErrMissingDateField", err)
	}
	// An entirely empty sheet is valid and yields an empty table.
	if _, _, _, err := NormalizeDates(Table{}, "Date", "2006-01-02"); err != nil {
		t.Fatalf("empty table should not error: %v", err)
	}
}

func TestDetectCategories(t *testing.T) {
	tbl := Table{
		Fields: []string{"Date", "Airdrop", "Notes", "Staking", "Total"},
		Rows: [][]string{
			{"2025-01-01", "10", "hello", "5", "15"},
			{"2025-01-02", "20", "", "1", "21"},
		},
	}
	got := DetectCategories(tbl, "Date", "Total")
	want := []string{"Airdrop", "Staking"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	// Determinism: a second run returns the identical ordered list.
	again := DetectCategories(tbl, "Date", "Total")
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("detection not deterministic: %v vs %v", got, again)
	}
}

func TestDetectCategoriesBlankCellsAreNumeric(t *testing.T) {
	tbl := Table{
		Fields: []string{"Date", "Sparse"},
		Rows:   [][]string{{"2025-01-01", ""}, {"2025-01-02", "4"}},
	}
	got := DetectCategories(tbl, "Date")
	if !reflect.DeepEqual(got, []string{"Sparse"}) {
		t.Fatalf("categories = %v, want [Sparse]", got)
	}
}

func TestWindowSemantics(t *testing.T) {
	spec := TableSpec{Domain: DomainWallets, DateField: "Date", DateLayout: "2006-01-02"}
	tbl := Table{
		Fields: []string{"Date", "Android"},
		Rows: [][]string{
			{"2024-12-31", "100"},
			{"2025-01-01", "1"},
		},
	}
	ds, err := BuildDataset(tbl, spec)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}

	cutoff := NewDate(2024, 12, 31)
	strict := ds.Window(cutoff, true)
	if len(strict.Records) != 1 || strict.Records[0].Value("Android").Whole() != 1 {
		t.Fatalf("strictly-after kept %d records", len(strict.Records))
	}
	inclusive := ds.Window(cutoff, false)
	if len(inclusive.Records) != 2 {
		t.Fatalf("on-or-after kept %d records, want 2", len(inclusive.Records))
	}
	// Source dataset untouched.
	if len(ds.Records) != 2 {
		t.Fatalf("window mutated its input: %d records", len(ds.Records))
	}
	// Empty result is valid, not an error.
	none := ds.Window(NewDate(2030, 1, 1), false)
	if len(none.Records) != 0 {
		t.Fatalf("expected empty window, got %d", len(none.Records))
	}
	if AggregateMonthly(none) != nil {
		t.Fatal("empty dataset must aggregate to an empty bucket sequence")
	}
}

func TestAggregateMonthlyGapFill(t *testing.T) {
	tbl := Table{
		Fields: []string{"Date", "Airdrop"},
		Rows: [][]string{
			{"2025-01-15", "10"},
			{"2025-03-02", "7"},
		},
	}
	ds, err := BuildDataset(tbl, TableSpec{Domain: DomainTokens, DateField: "Date", DateLayout: "2006-01-02"})
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	buckets := AggregateMonthly(ds)
	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want 3 (Jan, Feb, Mar)", len(buckets))
	}
	if buckets[0].Month != NewDate(2025, 1, 1) || buckets[2].Month != NewDate(2025, 3, 1) {
		t.Fatalf("bucket months wrong: %v .. %v", buckets[0].Month, buckets[2].Month)
	}
	if !buckets[1].Sum("Airdrop").IsZero() {
		t.Fatalf("February should be zero-filled, got %d", buckets[1].Sum("Airdrop").Milli)
	}
	if buckets[0].Sum("Airdrop").Whole() != 10 || buckets[2].Sum("Airdrop").Whole() != 7 {
		t.Fatalf("bucket sums wrong: %v / %v", buckets[0].Sums, buckets[2].Sums)
	}
}

func TestPivotOrderAndRoundTrip(t *testing.T) {
	ds, err := BuildDataset(walletTable(), WalletsSpec)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	buckets := AggregateMonthly(ds)
	rows := Pivot(buckets, ds.Categories)
	if len(rows) != len(buckets)*len(ds.Categories) {
		t.Fatalf("pivot rows = %d, want %d", len(rows), len(buckets)*len(ds.Categories))
	}
	// Outer loop months, inner loop declared category order.
	if rows[0].Month != NewDate(2025, 1, 1) || rows[0].Category != "Android" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Category != "iOS" || rows[3].Month != NewDate(2025, 2, 1) {
		t.Fatalf("pivot emission order wrong: %+v", rows[:4])
	}

	// Round trip: re-aggregating long form by month reproduces the
	// per-bucket totals.
	wide := Totals(buckets, ds.Categories)
	long := TotalsFromPivot(rows, ds.Categories)
	if !reflect.DeepEqual(wide, long) {
		t.Fatalf("round trip mismatch:\nwide %+v\nlong %+v", wide, long)
	}
}

func TestTotalsConsistency(t *testing.T) {
	ds, err := BuildDataset(walletTable(), WalletsSpec)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	sum := Totals(AggregateMonthly(ds), ds.Categories)

	var byCat, byMonth Amount
	for _, ct := range sum.ByCategory {
		byCat = byCat.Add(ct.Total)
	}
	for _, mt := range sum.ByMonth {
		byMonth = byMonth.Add(mt.Total)
	}
	if sum.Grand != byCat || sum.Grand != byMonth {
		t.Fatalf("grand %d, sum of categories %d, sum of months %d must all agree",
			sum.Grand.Milli, byCat.Milli, byMonth.Milli)
	}
}

func TestWalletEndToEnd(t *testing.T) {
	ds, err := BuildDataset(walletTable(), WalletsSpec)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	filtered := ds.Window(WalletsSpec.Cutoff, WalletsSpec.CutoffExclusive)
	buckets := AggregateMonthly(filtered)

	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	jan, feb := buckets[0], buckets[1]
	for _, tc := range []struct {
		bucket   MonthBucket
		category string
		want     int64
	}{
		{jan, "Android", 5}, {jan, "iOS", 1}, {jan, "Web", 1},
		{feb, "Android", 0}, {feb, "iOS", 0}, {feb, "Web", 5},
	} {
		if got := tc.bucket.Sum(tc.category).Whole(); got != tc.want {
			t.Fatalf("%v %s = %d, want %d", tc.bucket.Month, tc.category, got, tc.want)
		}
	}

	sum := Totals(buckets, filtered.Categories)
	if sum.CategoryTotal("Android").Whole() != 5 ||
		sum.CategoryTotal("iOS").Whole() != 1 ||
		sum.CategoryTotal("Web").Whole() != 6 {
		t.Fatalf("platform totals wrong: %+v", sum.ByCategory)
	}
	if sum.Grand.Whole() != 12 {
		t.Fatalf("grand total = %d, want 12", sum.Grand.Whole())
	}
}
