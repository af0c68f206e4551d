package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dayv-exe/PhishingEmailDetector/source"
)

const (
	DefaultInputPath      = "./datasets/dataset.csv"
	DefaultOutputPath     = "./datasets/extracted_dataset.csv"
	DefaultIncompletePath = "./datasets/rows_with_empty_cells.csv"
)

// Config captures all command-line options required to run the extraction.
type Config struct {
	InputPath        string
	OutputPath       string
	IncompletePath   string
	Encoding         string
	PreserveBodyCase bool
	Progress         bool
	LogLevel         string
	LogDir           string
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	flags.String("input", DefaultInputPath, "Path to the raw email dataset (Email_Subject, Email_Content, Label)")
	flags.String("output", DefaultOutputPath, "Path of the extracted dataset")
	flags.String("incomplete-output", DefaultIncompletePath, "Path of the dataset holding rows with empty cells")
	flags.String("encoding", source.EncodingUTF8, "Input encoding: utf-8, iso-8859-1, windows-1252")
	flags.Bool("preserve-body-case", false, "Keep the original casing of email bodies")
	flags.Bool("progress", true, "Show a progress bar (log level info only)")

	persistent := cmd.PersistentFlags()
	persistent.String("log-level", "info", "Logging level: debug, info, warn, error")
	persistent.String("log-dir", "", "Also write logs to a timestamped file in this directory")

	return cmd.MarkFlagFilename("input", "csv")
}

// LoadConfig converts the parsed Cobra flags into a Config struct with validation.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	inputPath, err := flags.GetString("input")
	if err != nil {
		return Config{}, err
	}
	outputPath, err := flags.GetString("output")
	if err != nil {
		return Config{}, err
	}
	incompletePath, err := flags.GetString("incomplete-output")
	if err != nil {
		return Config{}, err
	}
	encoding, err := flags.GetString("encoding")
	if err != nil {
		return Config{}, err
	}
	preserveBodyCase, err := flags.GetBool("preserve-body-case")
	if err != nil {
		return Config{}, err
	}
	progress, err := flags.GetBool("progress")
	if err != nil {
		return Config{}, err
	}
	logLevel, logDir, err := LoadLogFlags(cmd)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputPath:        cleanPath(inputPath),
		OutputPath:       cleanPath(outputPath),
		IncompletePath:   cleanPath(incompletePath),
		Encoding:         encoding,
		PreserveBodyCase: preserveBodyCase,
		Progress:         progress,
		LogLevel:         logLevel,
		LogDir:           logDir,
	}

	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadLogFlags reads the persistent logging flags shared by every command.
func LoadLogFlags(cmd *cobra.Command) (level, dir string, err error) {
	flags := cmd.Flags()
	level, err = flags.GetString("log-level")
	if err != nil {
		return "", "", err
	}
	dir, err = flags.GetString("log-dir")
	if err != nil {
		return "", "", err
	}

	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if err := ValidateLogLevel(level); err != nil {
		return "", "", err
	}
	return level, dir, nil
}

func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid --log-level: %s", level)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.InputPath == "" {
		return fmt.Errorf("--input is required")
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("--output is required")
	}
	if cfg.IncompletePath == "" {
		return fmt.Errorf("--incomplete-output is required")
	}
	if cfg.OutputPath == cfg.InputPath || cfg.IncompletePath == cfg.InputPath {
		return fmt.Errorf("output paths must differ from --input")
	}
	if cfg.OutputPath == cfg.IncompletePath {
		return fmt.Errorf("--output and --incomplete-output must differ")
	}

	encoding, err := source.NormalizeEncoding(cfg.Encoding)
	if err != nil {
		return fmt.Errorf("invalid --encoding: %w", err)
	}
	cfg.Encoding = encoding

	return ValidateLogLevel(cfg.LogLevel)
}

func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
