package model

import (
	"reflect"
	"testing"
)

func TestEmailRecord_Fields(t *testing.T) {
	rec := EmailRecord{
		Date:         &Date{Day: 4, Month: 3, Year: 2020},
		URLs:         []string{"http://evil.example/a", "http://evil.example/b"},
		URLCount:     2,
		SenderDomain: "example.com",
		Sender:       "alice@example.com",
		Title:        "Hi",
		Body:         "hello there",
		Label:        "0",
	}

	want := []string{"4", "3", "2020", "http://evil.example/a|http://evil.example/b", "2", "example.com", "alice@example.com", "Hi", "hello there", "0"}
	if got := rec.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %q, want %q", got, want)
	}
	if len(rec.Fields()) != len(Columns) {
		t.Errorf("Fields() has %d values, Columns has %d", len(rec.Fields()), len(Columns))
	}
}

func TestEmailRecord_FieldsWithoutDate(t *testing.T) {
	rec := EmailRecord{Title: "Hi", Label: "1"}
	got := rec.Fields()
	for i, name := range []string{"day", "month", "year", "urls"} {
		if got[i] != "" {
			t.Errorf("%s = %q, want empty", name, got[i])
		}
	}
	if got[4] != "0" {
		t.Errorf("url_count = %q, want %q", got[4], "0")
	}
}

func TestEmailRecord_Incomplete(t *testing.T) {
	complete := EmailRecord{
		Date:         &Date{Day: 1, Month: 2, Year: 2021},
		URLs:         []string{"https://x.example"},
		URLCount:     1,
		SenderDomain: "x.example",
		Sender:       "a@x.example",
		Title:        "t",
		Body:         "b",
		Label:        "1",
	}

	tests := []struct {
		name   string
		mutate func(r *EmailRecord)
		want   bool
	}{
		{name: "complete", mutate: func(r *EmailRecord) {}, want: false},
		{name: "no date", mutate: func(r *EmailRecord) { r.Date = nil }, want: true},
		{name: "no urls", mutate: func(r *EmailRecord) { r.URLs = nil; r.URLCount = 0 }, want: true},
		{name: "whitespace title", mutate: func(r *EmailRecord) { r.Title = "  " }, want: true},
		{name: "empty label", mutate: func(r *EmailRecord) { r.Label = "" }, want: true},
		{name: "empty body", mutate: func(r *EmailRecord) { r.Body = "" }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := complete
			tt.mutate(&rec)
			if got := rec.Incomplete(); got != tt.want {
				t.Errorf("Incomplete() = %v, want %v", got, tt.want)
			}
		})
	}
}
