package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datagroom/pkg/config"
	"datagroom/pkg/logging"
)

var (
	// Global flags, applied on top of the environment configuration
	flagOutputDir string
	flagWorkers   int
	flagLogLevel  string
	flagLogFormat string
	flagNoReport  bool

	// Loaded configuration and logger, shared by all subcommands
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "datagroom",
	Short: "Clean tabular datasets and report what changed",
	Long: `Datagroom loads tabular data from files or databases, runs it through a
fixed cleaning pipeline (column normalization, missing-value resolution,
duplicate removal, outlier capping), and writes the cleaned dataset back
out together with a record of every change made.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Command-line flags override the environment
		f := cmd.Root().PersistentFlags()
		if f.Changed("output") {
			cfg.OutputDir = flagOutputDir
		}
		if f.Changed("workers") {
			cfg.WorkerCount = flagWorkers
		}
		if f.Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if f.Changed("log-format") {
			cfg.LogFormat = flagLogFormat
		}
		if flagNoReport {
			cfg.ReportHTML = false
		}

		logger, err = logging.Init(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output", "o", "out", "directory for cleaned datasets and reports")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "worker goroutines for batch runs (0 = derive from CPU count)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "json", "log encoding: json or console")
	rootCmd.PersistentFlags().BoolVar(&flagNoReport, "no-report", false, "skip the HTML report")
}
