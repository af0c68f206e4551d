package clean

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/dayv-exe/PhishingEmailDetector/source"
)

// Cell is one value of a table. Missing cells render as empty strings.
type Cell struct {
	Value   string
	Missing bool
}

// Table is a small in-memory dataframe: named columns over string cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// ReadTable loads CSV data. Cells that equal one of naValues are marked missing,
// short rows are padded with missing cells and rows wider than the header are rejected.
func ReadTable(r io.Reader, naValues []string) (*Table, error) {
	reader := source.NewCSVReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", source.ErrMalformedSource)
		}
		return nil, fmt.Errorf("%w: %v", source.ErrMalformedSource, err)
	}

	na := make(map[string]struct{}, len(naValues))
	for _, v := range naValues {
		na[v] = struct{}{}
	}

	table := &Table{Columns: slices.Clone(header)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", source.ErrMalformedSource, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", source.ErrMalformedSource, line, len(record), len(header))
		}

		row := make([]Cell, len(header))
		for i := range row {
			if i >= len(record) {
				row[i] = Cell{Missing: true}
				continue
			}
			_, missing := na[record[i]]
			row[i] = Cell{Value: record[i], Missing: missing}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.Columns, name)
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Drop removes column name and reports whether it existed.
func (t *Table) Drop(name string) bool {
	idx := t.Index(name)
	if idx < 0 {
		return false
	}
	t.Columns = slices.Delete(t.Columns, idx, idx+1)
	for i, row := range t.Rows {
		t.Rows[i] = slices.Delete(row, idx, idx+1)
	}
	return true
}

// Record renders row i for CSV output.
func (t *Table) Record(i int) []string {
	out := make([]string, len(t.Rows[i]))
	for j, cell := range t.Rows[i] {
		if !cell.Missing {
			out[j] = cell.Value
		}
	}
	return out
}

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// NormalizeColumnName trims a header name, turns spaces into underscores
// and drops every other non-word character.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	return nonWordPattern.ReplaceAllString(name, "")
}

// NormalizeColumns applies NormalizeColumnName to every header.
func (t *Table) NormalizeColumns() {
	for i, name := range t.Columns {
		t.Columns[i] = NormalizeColumnName(name)
	}
}

// ColumnCount is the number of missing cells in one column.
type ColumnCount struct {
	Column  string
	Missing int
}

// MissingCounts counts missing cells per column, skipping excluded columns.
func (t *Table) MissingCounts(exclude []string) []ColumnCount {
	var counts []ColumnCount
	for j, name := range t.Columns {
		if slices.Contains(exclude, name) {
			continue
		}
		count := ColumnCount{Column: name}
		for _, row := range t.Rows {
			if row[j].Missing {
				count.Missing++
			}
		}
		counts = append(counts, count)
	}
	return counts
}
