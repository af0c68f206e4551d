package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dayv-exe/PhishingEmailDetector/clean"
	"github.com/dayv-exe/PhishingEmailDetector/config"
	"github.com/dayv-exe/PhishingEmailDetector/progress"
	"github.com/dayv-exe/PhishingEmailDetector/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input.csv> <output.csv>",
	Short: "Clean a phishing email dataset and report missing values",
	Args:  cobra.ExactArgs(2),
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

		encoding, _ := cmd.Flags().GetString("encoding")
		profilePath, _ := cmd.Flags().GetString("profile")
		chartPath, _ := cmd.Flags().GetString("chart")
		previewRows, _ := cmd.Flags().GetInt("preview")

		profile, err := clean.LoadProfile(profilePath)
		if err != nil {
			return err
		}

		table, report, err := clean.CleanFile(clean.Options{
			InputPath:  args[0],
			OutputPath: args[1],
			ChartPath:  chartPath,
			Encoding:   encoding,
			Profile:    profile,
		}, logger)
		if err != nil {
			return err
		}

		printCleanReport(table, report, args[1], chartPath, previewRows)
		return nil
	},
}

func init() {
	flags := cleanCmd.Flags()
	flags.String("encoding", source.EncodingISO88591, "Input encoding: utf-8, iso-8859-1, windows-1252")
	flags.String("profile", "", "TOML cleaning profile (defaults match the phishing dataset)")
	flags.String("chart", "", "Write missing value bar charts to this HTML file")
	flags.Int("preview", 5, "Number of cleaned rows to preview")

	if err := cleanCmd.MarkFlagFilename("profile", "toml"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register CLI flags: %v\n", err)
		os.Exit(1)
	}
	rootCmd.AddCommand(cleanCmd)
}

func printCleanReport(table *clean.Table, report clean.Report, outputPath, chartPath string, previewRows int) {
	pterm.DefaultSection.Println("Missing values before cleaning")
	printCounts(report.Before)
	pterm.DefaultSection.Println("Missing values after cleaning")
	printCounts(report.After)

	if previewRows > 0 && len(table.Rows) > 0 {
		pterm.DefaultSection.Println("Cleaned dataset preview")
		if err := pterm.DefaultTable.WithHasHeader().WithData(table.Preview(previewRows)).Render(); err != nil {
			slog.Warn("preview failed", "err", err)
		}
	}

	lines := []string{
		fmt.Sprintf("Cleaned data saved to: %s", outputPath),
		fmt.Sprintf("Rows: %d", len(table.Rows)),
		fmt.Sprintf("Dates filled: %d", report.DatesFilled),
	}
	if len(report.Dropped) > 0 {
		lines = append(lines, fmt.Sprintf("Dropped columns: %v", report.Dropped))
	}
	if chartPath != "" {
		lines = append(lines, fmt.Sprintf("Charts saved to: %s", chartPath))
	}
	progress.PrintReport(progress.Report{Title: "Cleaning complete!", Lines: lines})
}

func printCounts(counts []clean.ColumnCount) {
	data := [][]string{{"Column", "Missing"}}
	for _, c := range counts {
		data = append(data, []string{c.Column, fmt.Sprint(c.Missing)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		slog.Warn("missing value table failed", "err", err)
	}
}
