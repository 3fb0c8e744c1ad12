package core

// NormalizeDates parses the date field of every row with the table's layout
// and returns a new table containing only the rows whose date parsed, plus
// the parsed dates aligned to the kept rows and the number of rows dropped.
//
// Dropping is silent by contract: an unparsable date excludes the row, it
// never fails the pipeline. Callers that want visibility log the drop count.
// The input table is not mutated.
func NormalizeDates(t Table, dateField, layout string) (Table, []Date, int, error) {
	col := t.FieldIndex(dateField)
	if col == -1 {
		if len(t.Fields) == 0 && len(t.Rows) == 0 {
			// A present-but-empty sheet normalizes to an empty table.
			return Table{Name: t.Name}, nil, 0, nil
		}
		return Table{}, nil, 0, ErrMissingDateField
	}

	out := Table{
		Name:   t.Name,
		Fields: append([]string(nil), t.Fields...),
	}
	var dates []Date
	dropped := 0
	for i := range t.Rows {
		d, ok := ParseDate(t.Cell(i, col), layout)
		if !ok {
			dropped++
			continue
		}
		out.Rows = append(out.Rows, append([]string(nil), t.Rows[i]...))
		dates = append(dates, d)
	}
	return out, dates, dropped, nil
}
