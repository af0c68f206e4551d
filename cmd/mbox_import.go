package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dayv-exe/PhishingEmailDetector/config"
	"github.com/dayv-exe/PhishingEmailDetector/filter"
	"github.com/dayv-exe/PhishingEmailDetector/mbox"
	"github.com/dayv-exe/PhishingEmailDetector/progress"
	"github.com/dayv-exe/PhishingEmailDetector/stats"
)

var mboxImportCmd = &cobra.Command{
	Use:   "mbox-import <archive.mbox>",
	Short: "Convert an mbox archive into a raw email dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, logDir, err := config.LoadLogFlags(cmd)
		if err != nil {
			return err
		}
		logger, cleanup, err := setupLogger(logLevel, logDir)
		if err != nil {
			return err
		}
		defer func() {
			_ = cleanup()
		}()
		slog.SetDefault(logger)

		flags := cmd.Flags()
		output, _ := flags.GetString("output")
		label, _ := flags.GetString("label")
		stateDir, _ := flags.GetString("state-dir")
		top, _ := flags.GetInt("top")
		showProgress, _ := flags.GetBool("progress")
		includeHeader, _ := flags.GetStringSlice("include-header")
		includeBody, _ := flags.GetStringSlice("include-body")
		excludeHeader, _ := flags.GetStringSlice("exclude-header")
		excludeBody, _ := flags.GetStringSlice("exclude-body")

		if filepath.Clean(output) == filepath.Clean(args[0]) {
			return fmt.Errorf("--output must differ from the archive path")
		}

		importer := mbox.NewImporter(mbox.ImportOptions{
			Path:       args[0],
			OutputPath: output,
			Label:      label,
			StateDir:   stateDir,
			Filter: filter.Options{
				IncludeHeader: includeHeader,
				IncludeBody:   includeBody,
				ExcludeHeader: excludeHeader,
				ExcludeBody:   excludeBody,
			},
		}, logger)

		showProgress = showProgress && logLevel == "info"
		total := 0
		if showProgress {
			if total, err = mbox.CountMessages(args[0]); err != nil {
				logger.Debug("progress bar disabled", "err", err)
				showProgress = false
			}
		}
		bar := progress.New(total, "Importing messages", showProgress)
		importer.Subscribe("progress-bar", bar.Update)

		logger.Info("starting mbox import", "archive", args[0], "output", output, "stateDir", stateDir)
		result, err := importer.Run(cmd.Context())
		bar.Stop()
		if err != nil {
			return err
		}

		progress.PrintReport(progress.Report{
			Title:   "Import complete!",
			Lines:   importLines(result),
			Summary: result.Summary,
		})
		if top > 0 && len(result.Domains) > 0 {
			pterm.DefaultSection.Println("Top sender domains")
			stats.PrettyPrintTop(result.Domains, top)
		}
		return nil
	},
}

func init() {
	flags := mboxImportCmd.Flags()
	flags.String("output", "./datasets/dataset.csv", "Path of the generated dataset")
	flags.String("label", mbox.DefaultLabel, "Label written for every imported message")
	flags.String("state-dir", "", "Directory that remembers exported messages across runs")
	flags.Int("top", 10, "Number of top sender domains to print")
	flags.Bool("progress", true, "Show a progress bar (log level info only)")
	flags.StringSlice("include-header", nil, "Only import messages whose headers match this regex (repeatable)")
	flags.StringSlice("include-body", nil, "Only import messages whose body matches this regex (repeatable)")
	flags.StringSlice("exclude-header", nil, "Skip messages whose headers match this regex (repeatable)")
	flags.StringSlice("exclude-body", nil, "Skip messages whose body matches this regex (repeatable)")
	mboxImportCmd.MarkFlagsMutuallyExclusive("include-header", "exclude-header")
	mboxImportCmd.MarkFlagsMutuallyExclusive("include-body", "exclude-body")

	if err := mboxImportCmd.MarkFlagDirname("state-dir"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register CLI flags: %v\n", err)
		os.Exit(1)
	}
	rootCmd.AddCommand(mboxImportCmd)
}

func importLines(result mbox.ImportResult) []string {
	s := result.Summary
	lines := []string{
		fmt.Sprintf("Dataset saved to: %s", result.OutputPath),
		fmt.Sprintf("Messages scanned: %d", s.Processed),
		fmt.Sprintf("Messages written: %d", s.Written),
	}
	if s.Filtered > 0 {
		lines = append(lines, fmt.Sprintf("Filtered out: %d", s.Filtered))
	}
	if s.Duplicates > 0 {
		lines = append(lines, fmt.Sprintf("Already exported: %d", s.Duplicates))
	}
	if s.Errors > 0 {
		lines = append(lines, fmt.Sprintf("Unparseable messages: %d", s.Errors))
	}
	return append(lines, fmt.Sprintf("Duration: %v", result.Duration))
}
