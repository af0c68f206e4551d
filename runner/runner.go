package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dayv-exe/PhishingEmailDetector/config"
	"github.com/dayv-exe/PhishingEmailDetector/extract"
	"github.com/dayv-exe/PhishingEmailDetector/model"
	"github.com/dayv-exe/PhishingEmailDetector/sink"
	"github.com/dayv-exe/PhishingEmailDetector/source"
	"github.com/dayv-exe/PhishingEmailDetector/stats"
)

type subscriber struct {
	name string
	fn   func(stats.Event)
}

// Runner drives the extraction one row at a time: read, build, route, write.
type Runner struct {
	cfg         config.Config
	logger      *slog.Logger
	runID       string
	subscribers []subscriber
}

// Result describes a finished run.
type Result struct {
	RunID          string
	Summary        stats.Summary
	Duration       time.Duration
	OutputPath     string
	IncompletePath string
}

func New(cfg config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	runID := uuid.NewString()
	return &Runner{
		cfg:    cfg,
		logger: logger.With("run", runID),
		runID:  runID,
	}
}

func (r *Runner) Config() config.Config {
	return r.cfg
}

func (r *Runner) Logger() *slog.Logger {
	return r.logger
}

// Subscribe registers fn to receive every event of the run, in order.
func (r *Runner) Subscribe(name string, fn func(stats.Event)) {
	r.subscribers = append(r.subscribers, subscriber{name: name, fn: fn})
}

// Run processes the whole input. On error no output file is left behind.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	collector := stats.NewCollector()
	result := Result{
		RunID:          r.runID,
		OutputPath:     r.cfg.OutputPath,
		IncompletePath: r.cfg.IncompletePath,
	}

	emit := func(evt stats.Event) {
		collector.Apply(evt)
		for _, sub := range r.subscribers {
			sub.fn(evt)
		}
	}
	fail := func(err error) (Result, error) {
		emit(stats.Event{Stage: stats.StageExtract, Type: stats.EventTypeError, Err: err})
		result.Summary = collector.Snapshot()
		result.Duration = time.Since(started)
		r.logger.Error("pipeline failed", append(result.Summary.LogAttrs(), "duration", result.Duration, "err", err)...)
		return result, err
	}

	src, err := source.Open(source.Options{Path: r.cfg.InputPath, Encoding: r.cfg.Encoding}, r.logger)
	if err != nil {
		return fail(fmt.Errorf("source: %w", err))
	}
	defer src.Close()

	mainSink, err := sink.Create(r.cfg.OutputPath, model.Columns)
	if err != nil {
		return fail(fmt.Errorf("main output: %w", err))
	}
	defer mainSink.Abort()

	incompleteSink, err := sink.Create(r.cfg.IncompletePath, model.Columns)
	if err != nil {
		return fail(fmt.Errorf("incomplete output: %w", err))
	}
	defer incompleteSink.Abort()

	router := NewRouter(mainSink, incompleteSink)
	opts := extract.Options{PreserveBodyCase: r.cfg.PreserveBodyCase}

	r.logger.Info("extraction started", "input", r.cfg.InputPath, "encoding", r.cfg.Encoding)

	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("source: %w", err))
		}
		emit(stats.Event{Stage: stats.StageSource, Type: stats.EventTypeScanned, Row: row.Line})

		rec := extract.Build(row, opts)
		incomplete, err := router.Route(rec)
		if err != nil {
			return fail(fmt.Errorf("row %d: %w", row.Line, err))
		}
		if incomplete {
			emit(stats.Event{Stage: stats.StageExtract, Type: stats.EventTypeIncomplete, Row: row.Line})
			r.logger.Debug("row has empty cells", "row", row.Line, "dated", rec.Date != nil, "sender", rec.Sender != "", "urls", rec.URLCount)
		}
		emit(stats.Event{Stage: stats.StageExtract, Type: stats.EventTypeWritten, Row: row.Line})
	}

	if err := incompleteSink.Commit(); err != nil {
		return fail(fmt.Errorf("incomplete output: %w", err))
	}
	if err := mainSink.Commit(); err != nil {
		_ = os.Remove(r.cfg.IncompletePath)
		return fail(fmt.Errorf("main output: %w", err))
	}

	result.Summary = collector.Snapshot()
	result.Duration = time.Since(started)
	r.logger.Info("run summary", append(result.Summary.LogAttrs(), "duration", result.Duration, "output", r.cfg.OutputPath, "incompleteOutput", r.cfg.IncompletePath)...)
	return result, nil
}
