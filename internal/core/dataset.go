package core

// BuildDataset runs the load-time half of the pipeline: date normalization,
// category detection and value parsing, producing an immutable Dataset. The
// category list is evaluated once here and cached on the Dataset rather than
// re-inspected at each use.
//
// The date field and any pre-declared excluded fields (a stored "Total"
// column) never become categories. Rows whose date does not parse are
// dropped silently; the count is recorded on the Dataset.
func BuildDataset(t Table, spec TableSpec) (Dataset, error) {
	clean, dates, dropped, err := NormalizeDates(t, spec.DateField, spec.DateLayout)
	if err != nil {
		return Dataset{}, err
	}

	excluded := append([]string{spec.DateField}, spec.Excluded...)
	categories := DetectCategories(clean, excluded...)

	cols := make([]int, len(categories))
	for i, c := range categories {
		cols[i] = clean.FieldIndex(c)
	}

	records := make([]Record, len(clean.Rows))
	for i := range clean.Rows {
		values := make(map[string]Amount, len(categories))
		for j, c := range categories {
			// Detection guarantees the cell parses; a blank reads as zero.
			v, _ := ParseAmount(clean.Cell(i, cols[j]))
			values[c] = v
		}
		records[i] = Record{Date: dates[i], Values: values}
	}

	return Dataset{
		Domain:     spec.Domain,
		Categories: categories,
		Records:    records,
		Dropped:    dropped,
	}, nil
}

// Window returns a new Dataset restricted to records meeting the date lower
// bound: on-or-after cutoff, or strictly-after when exclusive is set. The
// receiver is not modified; an empty result is valid.
func (ds Dataset) Window(cutoff Date, exclusive bool) Dataset {
	out := Dataset{
		Domain:     ds.Domain,
		Categories: ds.Categories,
		Dropped:    ds.Dropped,
	}
	for _, r := range ds.Records {
		if exclusive {
			if !r.Date.After(cutoff) {
				continue
			}
		} else if r.Date.Before(cutoff) {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}
