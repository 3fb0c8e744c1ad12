package core

// Totals computes the summary sums over a bucket sequence: per-category
// totals in declared category order, per-month totals in bucket order, and
// the grand total. Grand equals the sum of the per-category totals, which
// equals the sum of the per-month totals; all three are exact int64 sums, so
// the equality is an identity, not an approximation.
func Totals(buckets []MonthBucket, categories []string) TotalsSummary {
	byCategory := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		byCategory[i] = CategoryTotal{Category: c}
	}

	byMonth := make([]MonthTotal, 0, len(buckets))
	var grand Amount
	for _, b := range buckets {
		var monthTotal Amount
		for i, c := range categories {
			v := b.Sum(c)
			byCategory[i].Total = byCategory[i].Total.Add(v)
			monthTotal = monthTotal.Add(v)
		}
		byMonth = append(byMonth, MonthTotal{Month: b.Month, Total: monthTotal})
		grand = grand.Add(monthTotal)
	}

	return TotalsSummary{ByCategory: byCategory, ByMonth: byMonth, Grand: grand}
}

// TotalsFromPivot computes the same summary from the long-form
// representation. Months keep their first-seen (chronological) order.
func TotalsFromPivot(rows []PivotRow, categories []string) TotalsSummary {
	byCategory := make([]CategoryTotal, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		byCategory[i] = CategoryTotal{Category: c}
		index[c] = i
	}

	var byMonth []MonthTotal
	monthIndex := make(map[int]int)
	var grand Amount
	for _, row := range rows {
		if i, ok := index[row.Category]; ok {
			byCategory[i].Total = byCategory[i].Total.Add(row.Value)
		}
		key := monthKey(row.Month)
		i, ok := monthIndex[key]
		if !ok {
			i = len(byMonth)
			monthIndex[key] = i
			byMonth = append(byMonth, MonthTotal{Month: row.Month})
		}
		byMonth[i].Total = byMonth[i].Total.Add(row.Value)
		grand = grand.Add(row.Value)
	}

	return TotalsSummary{ByCategory: byCategory, ByMonth: byMonth, Grand: grand}
}
