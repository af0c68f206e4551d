package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

func TestBuild_Scenario(t *testing.T) {
	row := model.InputRow{
		Subject: "Hi",
		Content: "From: Alice@Example.com\nDate: 03/04/2020\nHello there",
		Label:   "0",
	}

	got := Build(row, Options{})
	want := model.EmailRecord{
		Date:         &model.Date{Day: 4, Month: 3, Year: 2020},
		URLs:         []string{},
		URLCount:     0,
		SenderDomain: "example.com",
		Sender:       "alice@example.com",
		Title:        "Hi",
		Body:         "hello there",
		Label:        "0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %+v, want %+v", got, want)
	}
}

func TestBuild_URLs(t *testing.T) {
	row := model.InputRow{
		Subject: "Verify",
		Content: "From: support@bank.example\nVisit http://evil.example/a and http://evil.example/b",
		Label:   "1",
	}

	got := Build(row, Options{})
	if got.URLCount != 2 {
		t.Fatalf("URLCount = %d, want 2", got.URLCount)
	}
	if col := got.Fields()[3]; col != "http://evil.example/a|http://evil.example/b" {
		t.Errorf("urls column = %q", col)
	}
}

func TestBuild_MissingHeaders(t *testing.T) {
	row := model.InputRow{
		Subject: "Win",
		Content: "You WON a prize.\nClaim it today.",
		Label:   "1",
	}

	got := Build(row, Options{})
	if got.Sender != "" || got.SenderDomain != "" {
		t.Errorf("sender = %q, domain = %q, want both empty", got.Sender, got.SenderDomain)
	}
	if got.Date != nil {
		t.Errorf("Date = %+v, want nil", *got.Date)
	}
	if got.Body != strings.ToLower(row.Content) {
		t.Errorf("Body = %q, want whole lower-cased content", got.Body)
	}
	if !got.Incomplete() {
		t.Error("expected record to be incomplete")
	}
}

func TestBuild_Invariants(t *testing.T) {
	contents := []string{
		"",
		"From: a@b.example\nDate: 13/13/2020\nhttp://x.example http://x.example",
		"From: no-at-sign\nDate: 12/25/2021\nbody https://y.example/%41",
		"Date: 31/01/2022\n\nhttp://z.example/(a),b",
		"To: x\nAttachment: y\n",
	}

	for _, content := range contents {
		rec := Build(model.InputRow{Content: content}, Options{})
		if rec.URLCount != len(rec.URLs) {
			t.Errorf("%q: URLCount = %d, len(URLs) = %d", content, rec.URLCount, len(rec.URLs))
		}
		fields := rec.Fields()
		blank := 0
		for _, f := range fields[:3] {
			if f == "" {
				blank++
			}
		}
		if blank != 0 && blank != 3 {
			t.Errorf("%q: partial date %q", content, fields[:3])
		}
		if !strings.Contains(rec.Sender, "@") && rec.SenderDomain != "" {
			t.Errorf("%q: domain %q without @ in sender %q", content, rec.SenderDomain, rec.Sender)
		}
	}
}
