// finance-calculators runs loan amortization, loan fee and investment
// calculations from a YAML batch file or from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the flags shared by every calculation command.
type options struct {
	configPath   string
	outputFormat string
	logLevel     string
	logFormat    string
	metricsFile  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "finance-calculators",
		Short: "Loan amortization, loan fee and investment calculators",
		Long: `finance-calculators amortizes fixed-rate loans, finds the fee-free rate
equivalent to a loan with an upfront fee, and projects or solves recurring
investments.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format override (json, console)")
	rootCmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newLoanCmd(opts))
	rootCmd.AddCommand(newInvestCmd(opts))
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "finance-calculators %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every calculation in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(opts.configPath)
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to load configuration at %s, copy %s to start one: %w", opts.configPath, constants.ExampleConfigFile, err)
			}
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
			}
			return execute(cmd, conf, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	return cmd
}

// execute runs conf through the calculator and writes the results to the
// command's output.
func execute(cmd *cobra.Command, conf *config.Configuration, opts *options) error {
	if opts.logFormat != "" {
		conf.Logging.Format = opts.logFormat
	}
	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	conf.Output.Format = outputFormat

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.execute"),
		)
	}

	metricsFile := conf.Metrics.File
	if opts.metricsFile != "" {
		metricsFile = opts.metricsFile
	}
	var collectors *metrics.Collectors
	if metricsFile != "" {
		collectors = metrics.New(conf.Metrics.Namespace)
	}

	runner := calculator.NewRunner(logger, calculator.WithMetrics(collectors))
	results, runErr := runner.Run(cmd.Context(), *conf)

	if metricsFile != "" {
		if err := collectors.WriteToTextfile(metricsFile); err != nil {
			logger.Error("failed to write metrics",
				zap.String("op", "main.execute"),
				zap.Error(err),
			)
		}
	}

	if runErr != nil {
		logger.Error("failed to run calculations",
			zap.String("op", "main.execute"),
			zap.Error(runErr),
		)
		return runErr
	}

	return output.Write(cmd.OutOrStdout(), outputFormat, results)
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}
