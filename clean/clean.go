package clean

// Report summarizes one cleaning pass.
type Report struct {
	Before      []ColumnCount
	After       []ColumnCount
	DatesFilled int
	ModeFilled  map[string]int
	TextFilled  map[string]int
	Dropped     []string
}

// Clean runs the cleaning steps on t in place: column names, date imputation,
// mode imputation, dropped columns, text normalization.
func Clean(t *Table, p Profile) Report {
	t.NormalizeColumns()

	report := Report{
		Before:     t.MissingCounts(p.ExcludeFromMissing),
		ModeFilled: make(map[string]int),
		TextFilled: make(map[string]int),
	}

	if p.DateColumn != "" {
		report.DatesFilled = t.FillDateMode(p.DateColumn)
	}

	for _, column := range p.ModeColumns {
		if t.Has(column) {
			report.ModeFilled[column] = t.FillMode(column, p.ModePlaceholders, p.ModeFallback)
		}
	}

	for _, column := range p.DropColumns {
		if t.Drop(column) {
			report.Dropped = append(report.Dropped, column)
		}
	}

	normalizer := NewTextNormalizer(p.TextNAValues, p.TextFill, p.StripMarkup)
	for _, column := range p.TextColumns {
		if t.Has(column) {
			report.TextFilled[column] = t.NormalizeColumn(column, normalizer)
		}
	}

	report.After = t.MissingCounts(p.ExcludeFromMissing)
	return report
}
