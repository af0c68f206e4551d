package mbox

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/dayv-exe/PhishingEmailDetector/extract"
	"github.com/dayv-exe/PhishingEmailDetector/filter"
	"github.com/dayv-exe/PhishingEmailDetector/model"
	"github.com/dayv-exe/PhishingEmailDetector/stats"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestImporter_Run(t *testing.T) {
	output := filepath.Join(t.TempDir(), "dataset.csv")
	importer := NewImporter(ImportOptions{Path: samplePath, OutputPath: output}, nil)

	var events []stats.Event
	importer.Subscribe("test", func(evt stats.Event) { events = append(events, evt) })

	result, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	s := result.Summary
	if s.Processed != 4 || s.Written != 2 || s.Duplicates != 1 || s.Errors != 1 {
		t.Errorf("Summary = %+v, want 4 processed, 2 written, 1 duplicate, 1 error", s)
	}
	if len(events) == 0 || events[0].Stage != stats.StageMbox {
		t.Errorf("events = %+v, want mbox stage events", events)
	}
	if result.Domains["bank.example"] != 1 || result.Domains["shop.example"] != 1 {
		t.Errorf("Domains = %v", result.Domains)
	}

	rows := readRows(t, output)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Email_Subject" || rows[0][1] != "Email_Content" || rows[0][2] != "Label" {
		t.Errorf("header = %q", rows[0])
	}

	wantContent := "From: Alerts@Bank.example\n" +
		"To: victim@mail.example\n" +
		"Date: 04/03/2020\n" +
		"Attachment: invoice.pdf\n" +
		"\n" +
		"Please verify at http://bank.example.evil/login now."
	if rows[1][0] != "Verify your account" || rows[1][1] != wantContent || rows[1][2] != DefaultLabel {
		t.Errorf("row 1 = %q", rows[1])
	}
	if rows[2][0] != "Café deals" || rows[2][1] != "From: news@shop.example\n\nBig deals & more at shop" {
		t.Errorf("row 2 = %q", rows[2])
	}

	rec := extract.Build(model.InputRow{Subject: rows[1][0], Content: rows[1][1], Label: rows[1][2]}, extract.Options{})
	if rec.SenderDomain != "bank.example" || rec.URLCount != 1 || rec.Date == nil {
		t.Errorf("extracted record = %+v", rec)
	}
	if rec.Date != nil && (rec.Date.Month != 4 || rec.Date.Day != 3 || rec.Date.Year != 2020) {
		t.Errorf("extracted date = %+v, want 2020-04-03", *rec.Date)
	}
}

func TestImporter_StateSkipsExported(t *testing.T) {
	dir := t.TempDir()
	opts := ImportOptions{
		Path:       samplePath,
		OutputPath: filepath.Join(dir, "first.csv"),
		StateDir:   filepath.Join(dir, "state"),
		Label:      "0",
	}

	first, err := NewImporter(opts, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if first.Summary.Written != 2 {
		t.Fatalf("first Written = %d, want 2", first.Summary.Written)
	}
	if rows := readRows(t, opts.OutputPath); rows[1][2] != "0" {
		t.Errorf("label = %q, want 0", rows[1][2])
	}

	opts.OutputPath = filepath.Join(dir, "second.csv")
	second, err := NewImporter(opts, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.Summary.Written != 0 || second.Summary.Duplicates != 3 {
		t.Errorf("second Summary = %+v, want 0 written, 3 duplicates", second.Summary)
	}
	if rows := readRows(t, opts.OutputPath); len(rows) != 1 {
		t.Errorf("second output rows = %d, want header only", len(rows))
	}
}

func TestImporter_Filter(t *testing.T) {
	output := filepath.Join(t.TempDir(), "filtered.csv")
	importer := NewImporter(ImportOptions{
		Path:       samplePath,
		OutputPath: output,
		Filter:     filter.Options{IncludeHeader: []string{`Subject: Verify`}},
	}, nil)

	result, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	s := result.Summary
	if s.Written != 1 || s.Filtered != 2 || s.Duplicates != 1 {
		t.Errorf("Summary = %+v, want 1 written, 2 filtered, 1 duplicate", s)
	}
}

func TestImporter_Errors(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.csv")

	_, err := NewImporter(ImportOptions{
		Path:       samplePath,
		OutputPath: output,
		Filter:     filter.Options{IncludeBody: []string{"a"}, ExcludeBody: []string{"b"}},
	}, nil).Run(context.Background())
	if err == nil {
		t.Error("Run() with conflicting filters error = nil, want error")
	}

	_, err = NewImporter(ImportOptions{Path: filepath.Join(dir, "absent.mbox"), OutputPath: output}, nil).Run(context.Background())
	if err == nil {
		t.Error("Run() with missing archive error = nil, want error")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("output exists after failed import: %v", statErr)
	}
}
