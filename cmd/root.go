package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dayv-exe/PhishingEmailDetector/config"
	"github.com/dayv-exe/PhishingEmailDetector/progress"
	"github.com/dayv-exe/PhishingEmailDetector/runner"
	"github.com/dayv-exe/PhishingEmailDetector/source"
)

var rootCmd = &cobra.Command{
	Use:           "phishing-dataset",
	Short:         "Extract structured email records from a raw phishing email dataset",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cmd)
		if err != nil {
			return err
		}

		logger, cleanup, err := setupLogger(cfg.LogLevel, cfg.LogDir)
		if err != nil {
			return err
		}
		defer func() {
			_ = cleanup()
		}()

		slog.SetDefault(logger)
		logger.Info("starting extraction", "input", cfg.InputPath, "output", cfg.OutputPath, "incompleteOutput", cfg.IncompletePath)

		return runExtraction(cmd.Context(), cfg, logger)
	},
}

func init() {
	if err := config.RegisterFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register CLI flags: %v\n", err)
		os.Exit(1)
	}
}

// Execute runs the CLI. Ctrl-C aborts the current run without leaving partial outputs.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runExtraction(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	r := runner.New(cfg, logger)

	showProgress := cfg.Progress && cfg.LogLevel == "info"
	total := 0
	if showProgress {
		var err error
		total, err = source.CountRows(source.Options{Path: cfg.InputPath, Encoding: cfg.Encoding})
		if err != nil {
			logger.Debug("progress bar disabled", "err", err)
			showProgress = false
		}
	}

	bar := progress.New(total, "Extracting records", showProgress)
	r.Subscribe("progress-bar", bar.Update)

	result, err := r.Run(ctx)
	bar.Stop()
	if err != nil {
		return err
	}

	progress.PrintReport(progress.Report{
		Title: "Processing complete!",
		Lines: append(
			progress.ExtractionLines(result.Summary, result.OutputPath, result.IncompletePath),
			fmt.Sprintf("Duration: %v", result.Duration),
		),
		Summary: result.Summary,
	})
	return nil
}
