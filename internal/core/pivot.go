package core

// Pivot reshapes a wide bucket sequence into long form: one row per
// (month, category) pair, buckets in chronological order on the outside,
// categories in their declared order on the inside. The multiset of values
// is unchanged; re-aggregating the rows by month reproduces the original
// per-bucket totals exactly.
func Pivot(buckets []MonthBucket, categories []string) []PivotRow {
	if len(buckets) == 0 || len(categories) == 0 {
		return nil
	}
	rows := make([]PivotRow, 0, len(buckets)*len(categories))
	for _, b := range buckets {
		for _, c := range categories {
			rows = append(rows, PivotRow{Month: b.Month, Category: c, Value: b.Sum(c)})
		}
	}
	return rows
}
