package mbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dayv-exe/PhishingEmailDetector/extract"
	"github.com/dayv-exe/PhishingEmailDetector/filter"
	"github.com/dayv-exe/PhishingEmailDetector/sink"
	"github.com/dayv-exe/PhishingEmailDetector/source"
	"github.com/dayv-exe/PhishingEmailDetector/state"
	"github.com/dayv-exe/PhishingEmailDetector/stats"
)

// DefaultLabel marks imported messages as phishing.
const DefaultLabel = "1"

// ImportOptions configures an Importer.
type ImportOptions struct {
	Path       string
	OutputPath string
	Label      string
	StateDir   string
	Filter     filter.Options
}

// ImportResult describes a finished import.
type ImportResult struct {
	RunID      string
	Summary    stats.Summary
	Domains    map[string]int
	Duration   time.Duration
	OutputPath string
}

type subscriber struct {
	name string
	fn   func(stats.Event)
}

// Importer converts an mbox archive into a dataset the extraction can read.
type Importer struct {
	opts        ImportOptions
	logger      *slog.Logger
	runID       string
	subscribers []subscriber
}

func NewImporter(opts ImportOptions, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}
	runID := uuid.NewString()
	return &Importer{
		opts:   opts,
		logger: logger.With("run", runID),
		runID:  runID,
	}
}

// Subscribe registers fn to receive every event of the import, in order.
func (i *Importer) Subscribe(name string, fn func(stats.Event)) {
	i.subscribers = append(i.subscribers, subscriber{name: name, fn: fn})
}

// Run imports the archive. The output only appears if the whole archive was
// read; exported messages are recorded in the state directory afterwards.
func (i *Importer) Run(ctx context.Context) (ImportResult, error) {
	started := time.Now()
	collector := stats.NewCollector()
	result := ImportResult{
		RunID:      i.runID,
		Domains:    make(map[string]int),
		OutputPath: i.opts.OutputPath,
	}

	emit := func(evt stats.Event) {
		evt.Stage = stats.StageMbox
		collector.Apply(evt)
		for _, s := range i.subscribers {
			s.fn(evt)
		}
	}

	f, err := filter.New(i.opts.Filter)
	if err != nil {
		return result, err
	}

	var tracker state.Tracker = state.NewMemoryTracker()
	if strings.TrimSpace(i.opts.StateDir) != "" {
		ft, err := state.OpenFileTracker(i.opts.StateDir)
		if err != nil {
			return result, err
		}
		i.logger.Debug("state loaded", "path", ft.Path(), "exported", ft.Count())
		tracker = ft
	}

	out, err := sink.Create(i.opts.OutputPath, []string{source.ColumnSubject, source.ColumnContent, source.ColumnLabel})
	if err != nil {
		_ = tracker.Close()
		return result, err
	}

	var pending []state.Entry
	seen := make(map[string]struct{})
	scanErr := Scan(ctx, i.opts.Path, func(raw Raw) error {
		emit(stats.Event{Type: stats.EventTypeScanned, Row: raw.Index})

		if !f.Allows(raw.Data) {
			emit(stats.Event{Type: stats.EventTypeFiltered, Row: raw.Index})
			return nil
		}

		hash := state.Hash(raw.Data)
		if _, dup := seen[hash]; dup || tracker.Seen(hash) {
			emit(stats.Event{Type: stats.EventTypeDuplicate, Row: raw.Index, Detail: hash})
			return nil
		}

		msg, err := Decode(raw.Data)
		if err != nil {
			err = fmt.Errorf("message %d: %w", raw.Index, err)
			i.logger.Warn("skipping message", "err", err)
			emit(stats.Event{Type: stats.EventTypeError, Row: raw.Index, Err: err})
			return nil
		}

		row := msg.InputRow(raw.Index, i.opts.Label)
		if err := out.Write([]string{row.Subject, row.Content, row.Label}); err != nil {
			return fmt.Errorf("write message %d: %w", raw.Index, err)
		}
		emit(stats.Event{Type: stats.EventTypeWritten, Row: raw.Index})

		seen[hash] = struct{}{}
		pending = append(pending, state.Entry{Hash: hash, Subject: msg.Subject, Output: i.opts.OutputPath})
		if domain := strings.ToLower(extract.SenderDomain(msg.From)); domain != "" {
			result.Domains[domain]++
		}
		return nil
	})

	result.Summary = collector.Snapshot()
	if scanErr != nil {
		_ = out.Abort()
		_ = tracker.Close()
		return result, scanErr
	}
	if err := out.Commit(); err != nil {
		_ = tracker.Close()
		return result, err
	}

	var firstErr error
	for _, e := range pending {
		if err := tracker.Record(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := tracker.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	result.Duration = time.Since(started)
	i.logger.Info("import finished", result.Summary.LogAttrs()...)
	return result, firstErr
}
