package core

// AggregateMonthly buckets the dataset's records by calendar month and sums
// every category within each bucket. The result spans every month between
// the dataset's earliest and latest dates inclusive, in chronological order;
// months with no contributing records appear as zero-filled buckets so trend
// axes have no gaps. An empty dataset yields an empty sequence.
func AggregateMonthly(ds Dataset) []MonthBucket {
	if len(ds.Records) == 0 {
		return nil
	}

	sums := make(map[int]map[string]Amount)
	minKey, maxKey := int(^uint(0)>>1), -1
	for _, r := range ds.Records {
		key := monthKey(r.Date)
		if key < minKey {
			minKey = key
		}
		if key > maxKey {
			maxKey = key
		}
		bucket := sums[key]
		if bucket == nil {
			bucket = make(map[string]Amount, len(ds.Categories))
			sums[key] = bucket
		}
		for _, c := range ds.Categories {
			bucket[c] = bucket[c].Add(r.Value(c))
		}
	}

	buckets := make([]MonthBucket, 0, maxKey-minKey+1)
	for key := minKey; key <= maxKey; key++ {
		bucket := sums[key]
		if bucket == nil {
			// Gap month: zero-fill every category.
			bucket = make(map[string]Amount, len(ds.Categories))
			for _, c := range ds.Categories {
				bucket[c] = Amount{}
			}
		}
		buckets = append(buckets, MonthBucket{Month: monthFromKey(key), Sums: bucket})
	}
	return buckets
}

// monthKey maps a date to a linear month index so gap filling is a plain
// integer range walk.
func monthKey(d Date) int {
	y, m, _ := d.Date()
	return y*12 + int(m) - 1
}

func monthFromKey(key int) Date {
	return NewDate(key/12, key%12+1, 1)
}
