package progress

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dayv-exe/PhishingEmailDetector/stats"
)

// Bar manages a progress bar for tracking row processing.
type Bar struct {
	pb      *pterm.ProgressbarPrinter
	total   int
	scanned int
	enabled bool
}

// New creates a progress bar over total rows. It stays silent unless enabled.
func New(total int, title string, enabled bool) *Bar {
	bar := &Bar{
		total:   total,
		enabled: enabled && total > 0,
	}

	if bar.enabled {
		pterm.Info.Printf("Rows to process: %d\n", total)
		pb, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle(title).
			Start()
		if err != nil {
			bar.enabled = false
			return bar
		}
		bar.pb = pb
	}

	return bar
}

// Update advances the bar for scanned rows and reports errors above it.
func (b *Bar) Update(evt stats.Event) {
	if !b.enabled || b.pb == nil {
		return
	}

	switch evt.Type {
	case stats.EventTypeScanned:
		b.scanned++
		b.pb.Increment()
	case stats.EventTypeError:
		if evt.Err != nil {
			pterm.Error.Printf("Error: %v\n", evt.Err)
		}
	}
}

// Scanned reports how many rows the bar has seen.
func (b *Bar) Scanned() int {
	return b.scanned
}

// Stop finalizes the progress bar.
func (b *Bar) Stop() {
	if !b.enabled || b.pb == nil {
		return
	}

	if b.pb.Current < b.total {
		b.pb.Current = b.total
	}
	_, _ = b.pb.Stop()
	b.pb = nil
}

// Report is the human-readable end-of-run summary.
type Report struct {
	Title   string
	Lines   []string
	Summary stats.Summary
}

// PrintReport prints a run summary section.
func PrintReport(r Report) {
	pterm.Println()
	pterm.DefaultSection.Println(r.Title)
	for _, line := range r.Lines {
		pterm.Info.Println(line)
	}
	if r.Summary.LastError != nil {
		pterm.Error.Printf("Last error: %v\n", r.Summary.LastError)
	}
}

// ExtractionLines renders the counters of an extraction run.
func ExtractionLines(summary stats.Summary, outputPath, incompletePath string) []string {
	return []string{
		fmt.Sprintf("Main output saved to: %s", outputPath),
		fmt.Sprintf("Empty rows saved to: %s", incompletePath),
		fmt.Sprintf("Total rows processed: %d", summary.Processed),
		fmt.Sprintf("Rows with empty cells: %d", summary.Incomplete),
	}
}
