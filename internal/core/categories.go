package core

// DetectCategories returns the fields of t that qualify as summable category
// columns: every cell under the field parses as numeric and the field is not
// in the excluded set. The result preserves header order, so repeated runs
// over the same table return the identical list; that order becomes the
// stacking and legend order downstream.
//
// Detection is dynamic because the workbook schemas evolve: new referral
// campaigns and token source channels appear as new columns over time.
func DetectCategories(t Table, excluded ...string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	var categories []string
	for col, field := range t.Fields {
		if field == "" || skip[field] {
			continue
		}
		numeric := true
		for i := range t.Rows {
			if _, ok := ParseAmount(t.Cell(i, col)); !ok {
				numeric = false
				break
			}
		}
		if numeric {
			categories = append(categories, field)
		}
	}
	return categories
}
