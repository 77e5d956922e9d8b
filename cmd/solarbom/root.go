package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"solarbom/internal/config"
	"solarbom/internal/slogutil"
	"solarbom/internal/version"
)

var (
	// projectDir is the directory holding .solarbom/
	projectDir string
	// referenceFlag overrides the configured reference data file
	referenceFlag string
	verbosity     int
	quietFlag     bool

	// set by PersistentPreRunE
	appConfig *config.Config
	logger    *slog.Logger
	logFile   io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "solarbom",
	Short: "solarbom - solar roof bill of materials",
	Long: `solarbom turns a roof layout, a grid of cells that either hold a panel or not,
into a priced bill of materials for an in-roof solar installation: panels,
mounting, flashing, battens, lead and electrical parts, each line with a
human-readable explanation of how its quantity was derived.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("solarbom version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Project directory containing .solarbom/ (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&referenceFlag, "reference", "", "Reference data file with prices and tables (overrides config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")
}

// setup loads configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectDir = wd
	}

	cfg, err := config.LoadConfig(projectDir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	level := slogutil.LevelFromString(cfg.Logging.Level)
	if verbosity > 0 || quietFlag {
		level = slogutil.LevelFromVerbosity(verbosity, quietFlag)
	}

	handler := slogutil.NewHandler(os.Stderr, cfg.Logging.Format, level)
	if cfg.Logging.File != "" {
		fileLogger, f, err := slogutil.NewFileLogger(cfg.Logging.File, slog.LevelDebug)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		handler = slogutil.NewTeeHandler(handler, fileLogger.Handler())
	}
	logger = slog.New(handler)

	logger.Debug("Loaded configuration",
		"dir", projectDir,
		"referenceData", cfg.ReferenceData,
		"classifier", cfg.Classifier.Mode,
	)
	return nil
}
