package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotcommander/cognishield/internal/baseline"
	"github.com/dotcommander/cognishield/internal/git"
	"github.com/dotcommander/cognishield/internal/outputters"
	"github.com/dotcommander/cognishield/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evalBaseline       string
	evalUpdateBaseline bool
	evalBuiltin        bool
	evalStaged         bool
	evalDiff           bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [paths...]",
	Short: "Evaluate scenario files against the calibration",
	Long: `Scores every scenario in the given files and directories and checks each
against its expected tier. With no paths, scenario files are discovered under
the configured root using the configured patterns.

Supported file patterns:
- **/*.scenario.yaml
- **/*.scenario.yml
- **/*.scenario.json

With --baseline, outcomes are compared against a previous snapshot and any
scenario whose tier, score or triggers changed is reported as drifted. Use
--update-baseline to write a fresh snapshot.

--staged and --diff restrict the run to scenario files that git reports as
staged or changed, which suits pre-commit hooks.

Exits 1 when an expectation fails or a scenario drifts.`,
	Run: func(cmd *cobra.Command, args []string) {
		ok, err := runEval(cmd, args)
		if err != nil {
			fail(err)
			return
		}
		if !ok {
			exitFunc(1)
		}
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalBaseline, "baseline", "", "Baseline snapshot to compare against")
	evalCmd.Flags().BoolVar(&evalUpdateBaseline, "update-baseline", false, "Write the current outcomes to the baseline file")
	evalCmd.Flags().BoolVar(&evalBuiltin, "builtin", false, "Include the built-in preset scenarios")
	evalCmd.Flags().BoolVar(&evalStaged, "staged", false, "Only evaluate scenario files staged in git")
	evalCmd.Flags().BoolVar(&evalDiff, "diff", false, "Only evaluate scenario files with uncommitted changes")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) (bool, error) {
	start := time.Now()
	if evalUpdateBaseline && evalBaseline == "" {
		return false, fmt.Errorf("--update-baseline requires --baseline")
	}
	if evalStaged && evalDiff {
		return false, fmt.Errorf("--staged and --diff are mutually exclusive")
	}

	engine, err := buildEngine()
	if err != nil {
		return false, err
	}

	var files []string
	if evalStaged || evalDiff {
		files, err = gitScenarioFiles(args)
		if err != nil {
			return false, err
		}
		if len(files) == 0 {
			if !cfg.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "No changed scenario files")
			}
			return true, nil
		}
	} else {
		files, err = collectScenarioFiles(args)
		if err != nil {
			return false, err
		}
	}

	loader, err := scenario.NewLoader()
	if err != nil {
		return false, err
	}

	var scenarios []scenario.Scenario
	if evalBuiltin || len(files) == 0 {
		scenarios = append(scenarios, scenario.Builtins()...)
	}
	for _, path := range files {
		loaded, err := loader.LoadFile(path)
		if err != nil {
			return false, err
		}
		logger.Debug("scenario file loaded", zap.String("file", path), zap.Int("scenarios", len(loaded)))
		scenarios = append(scenarios, loaded...)
	}

	report := &scenario.Report{
		Calibration: calibrationName(),
		Results:     scenario.Run(engine, scenarios),
		Baseline:    evalBaseline,
	}

	if evalBaseline != "" && !evalUpdateBaseline {
		b, err := baseline.LoadBaseline(evalBaseline)
		switch {
		case err == nil:
			drifted := b.MarkDrift(report.Results)
			logger.Info("baseline compared",
				zap.String("baseline", evalBaseline),
				zap.String("snapshot_calibration", b.Calibration),
				zap.Int("drifted", drifted))
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("baseline not found, skipping drift check", zap.String("baseline", evalBaseline))
		default:
			return false, err
		}
	}
	report.Duration = time.Since(start)

	if err := outputters.NewOutputterWithWriter(cfg, cmd.OutOrStdout()).Report(report); err != nil {
		return false, err
	}

	if evalUpdateBaseline {
		b := baseline.CreateBaseline(calibrationName(), report.Results)
		if err := b.SaveBaseline(evalBaseline); err != nil {
			return false, err
		}
		if !cfg.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Baseline written to %s (%d scenarios)\n", evalBaseline, len(b.Entries))
		}
	}

	logger.Info("evaluation finished",
		zap.Int("scenarios", len(report.Results)),
		zap.Int("failed", len(report.Failed())),
		zap.Int("drifted", len(report.Drifted())),
		zap.Duration("duration", report.Duration))
	return report.OK(), nil
}

// collectScenarioFiles expands args into scenario file paths. Files are taken
// as given; directories are searched with the configured patterns. With no
// args the configured root is searched.
func collectScenarioFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{cfg.Scenarios.Root}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			if _, err := scenario.ValidateFilePath(arg); err != nil {
				return nil, err
			}
			files = append(files, arg)
			continue
		}
		found, err := scenario.Discover(arg, cfg.Scenarios.Patterns)
		if err != nil {
			return nil, err
		}
		for _, rel := range found {
			files = append(files, filepath.Join(arg, rel))
		}
	}
	return files, nil
}

// gitScenarioFiles lists the staged or changed scenario files under the given
// directory, or the configured root.
func gitScenarioFiles(args []string) ([]string, error) {
	root := cfg.Scenarios.Root
	if len(args) > 0 {
		root = args[0]
	}
	if evalStaged {
		return git.GetStagedFiles(root, cfg.Scenarios.Patterns)
	}
	return git.GetChangedFiles(root, cfg.Scenarios.Patterns)
}
