package clean

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dayv-exe/PhishingEmailDetector/sink"
	"github.com/dayv-exe/PhishingEmailDetector/source"
)

// Options configures CleanFile.
type Options struct {
	InputPath  string
	OutputPath string
	ChartPath  string
	Encoding   string
	Profile    Profile
}

// CleanFile reads a dataset, cleans it and writes the result. The output only
// appears once every row has been written.
func CleanFile(opts Options, logger *slog.Logger) (*Table, Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if filepath.Clean(opts.InputPath) == filepath.Clean(opts.OutputPath) {
		return nil, Report{}, fmt.Errorf("output path must differ from input path")
	}

	file, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	decoded, err := source.Decode(file, opts.Encoding)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %v", source.ErrUndecodableSource, err)
	}

	table, err := ReadTable(decoded, opts.Profile.NAValues)
	if err != nil {
		return nil, Report{}, err
	}
	logger.Debug("dataset loaded", "path", opts.InputPath, "rows", len(table.Rows), "columns", len(table.Columns))

	report := Clean(table, opts.Profile)
	logger.Debug("dataset cleaned", "datesFilled", report.DatesFilled, "dropped", report.Dropped)

	if err := writeTable(opts.OutputPath, table); err != nil {
		return nil, Report{}, err
	}
	logger.Info("cleaned dataset written", "path", opts.OutputPath, "rows", len(table.Rows))

	if opts.ChartPath != "" {
		if err := writeCharts(opts.ChartPath, report); err != nil {
			return nil, Report{}, err
		}
		logger.Info("missing value charts written", "path", opts.ChartPath)
	}

	return table, report, nil
}

func writeTable(path string, table *Table) error {
	out, err := sink.Create(path, table.Columns)
	if err != nil {
		return err
	}

	for i := range table.Rows {
		if err := out.Write(table.Record(i)); err != nil {
			_ = out.Abort()
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return out.Commit()
}

func writeCharts(path string, report Report) error {
	var buf bytes.Buffer
	if err := RenderMissingCharts(&buf, report.Before, report.After); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write charts: %w", err)
	}
	return nil
}

// Preview returns the header and up to n rows, ready for a table printer.
func (t *Table) Preview(n int) [][]string {
	data := [][]string{t.Columns}
	for i := 0; i < n && i < len(t.Rows); i++ {
		data = append(data, t.Record(i))
	}
	return data
}
