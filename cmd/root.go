package cmd

import (
	"fmt"
	"os"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/config"
	"github.com/dotcommander/cognishield/internal/logging"
	"github.com/dotcommander/cognishield/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile     string
	thresholdsFile string
	quiet          bool
	verbose        bool
	outputFormat   string
	outputFile     string
	logFile        string

	cfg    *config.Config
	logger = zap.NewNop()

	// exitFunc is swapped out in tests
	exitFunc = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "cognishield",
	Short: "CogniShield - driver wellness scoring and emergency escalation",
	Long: `CogniShield fuses drowsiness and physiological readings (PERCLOS, yawn rate,
heart rate, HRV, pedal pressure and input inactivity) into a single CogniScore
from 0 to 100, classifies it into an alert tier, and runs the acknowledgement
countdown that precedes an automatic pull-over.

Use 'score' to evaluate one sample, 'eval' to check scenario files against a
calibration, 'simulate' to walk through an emergency, and 'dashboard' for the
interactive page.`,
	Version:           output.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: .cognishieldrc.{json,yaml,yml} in the working directory)")
	rootCmd.PersistentFlags().StringVarP(&thresholdsFile, "thresholds", "t", "", "Calibration file overriding the default thresholds (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for json or markdown reports")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	bindFlags()
}

// bindFlags wires the persistent flags into viper so flags win over the
// config file and environment.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("thresholds", flags.Lookup("thresholds"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("logFile", flags.Lookup("log-file"))
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	cfg = loaded

	// The dashboard owns the terminal, so it only logs to a file.
	if cmd.Name() == dashboardCmd.Name() {
		if cfg.LogFile == "" {
			logger = zap.NewNop()
			return nil
		}
		logger, err = logging.NewFileOnly(logging.Level(cfg.LogLevel, cfg.Verbose, false), cfg.LogFile)
		return err
	}

	logger, err = logging.New(logging.Level(cfg.LogLevel, cfg.Verbose, cfg.Quiet), cfg.LogFile)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("config", viper.ConfigFileUsed()),
		zap.String("format", cfg.Format),
		zap.String("thresholds", calibrationName()))
	return nil
}

// buildEngine returns a scoring engine for the configured calibration.
func buildEngine() (*cogniscore.Engine, error) {
	thresholds, err := config.LoadThresholds(cfg.Thresholds)
	if err != nil {
		return nil, err
	}
	engine, err := cogniscore.NewEngine(
		cogniscore.WithThresholds(thresholds),
		cogniscore.WithDropLimit(cfg.Limits.HeartRateDrop, cogniscore.DefaultDropPoints),
		cogniscore.WithInactivityLimit(cfg.Limits.Inactivity, cogniscore.DefaultInactivityPoints),
	)
	if err != nil {
		return nil, fmt.Errorf("error building scoring engine: %w", err)
	}
	return engine, nil
}

// calibrationName labels reports with the calibration in force.
func calibrationName() string {
	if cfg == nil || cfg.Thresholds == "" {
		return "default"
	}
	return cfg.Thresholds
}

// fail prints err and exits 1.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitFunc(1)
}
