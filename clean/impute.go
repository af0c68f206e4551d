package clean

import (
	"slices"
	"time"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FillDateMode parses column as dates, marks unparseable values missing and
// fills every missing cell with the most frequent date (earliest on ties).
// Dates render as 2006-01-02, with a time of day only if any value has one.
// It reports how many cells were filled.
func (t *Table) FillDateMode(column string) int {
	j := t.Index(column)
	if j < 0 {
		return 0
	}

	parsed := make([]time.Time, len(t.Rows))
	valid := make([]bool, len(t.Rows))
	counts := make(map[time.Time]int)
	withClock := false
	for i, row := range t.Rows {
		if row[j].Missing {
			continue
		}
		if ts, ok := parseDate(row[j].Value); ok {
			parsed[i], valid[i] = ts, true
			counts[ts]++
			if ts.Hour() != 0 || ts.Minute() != 0 || ts.Second() != 0 {
				withClock = true
			}
		}
	}

	var mode time.Time
	best := 0
	for ts, n := range counts {
		if n > best || (n == best && ts.Before(mode)) {
			mode, best = ts, n
		}
	}

	layout := "2006-01-02"
	if withClock {
		layout = "2006-01-02 15:04:05"
	}

	filled := 0
	for i, row := range t.Rows {
		switch {
		case valid[i]:
			row[j] = Cell{Value: parsed[i].Format(layout)}
		case best > 0:
			row[j] = Cell{Value: mode.Format(layout)}
			filled++
		default:
			row[j] = Cell{Missing: true}
		}
	}
	return filled
}

// FillMode treats the given placeholder values as missing and fills missing
// cells with the most frequent value (smallest on ties), or with fallback
// when the column has no value at all. It reports how many cells were filled.
func (t *Table) FillMode(column string, placeholders []string, fallback string) int {
	j := t.Index(column)
	if j < 0 {
		return 0
	}

	counts := make(map[string]int)
	for _, row := range t.Rows {
		if row[j].Missing || slices.Contains(placeholders, row[j].Value) {
			row[j] = Cell{Missing: true}
			continue
		}
		counts[row[j].Value]++
	}

	fill := fallback
	best := 0
	for value, n := range counts {
		if n > best || (n == best && value < fill) {
			fill, best = value, n
		}
	}

	filled := 0
	for _, row := range t.Rows {
		if row[j].Missing {
			row[j] = Cell{Value: fill}
			filled++
		}
	}
	return filled
}
