package clean

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderMissingCharts(t *testing.T) {
	before := []ColumnCount{{Column: "Day", Missing: 3}, {Column: "To", Missing: 1}}
	after := []ColumnCount{{Column: "Day", Missing: 0}}

	var buf bytes.Buffer
	if err := RenderMissingCharts(&buf, before, after); err != nil {
		t.Fatalf("RenderMissingCharts() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Missing Values Before Cleaning",
		"Missing Values After Cleaning",
		"Comparison of Missing Values Before and After Cleaning",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBarData(t *testing.T) {
	data := barData([]ColumnCount{{Column: "Day", Missing: 2}}, []string{"Day", "To"})
	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(data))
	}
	if data[0].Value != 2 || data[1].Value != 0 {
		t.Errorf("data = %+v, want [2 0]", data)
	}
}
