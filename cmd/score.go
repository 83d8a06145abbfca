package cmd

import (
	"fmt"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/outputters"
	"github.com/dotcommander/cognishield/internal/scenario"
	"github.com/dotcommander/cognishield/internal/simulator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scorePerclos       float64
	scoreYawnRate      float64
	scoreHeartRate     float64
	scorePedalPressure float64
	scoreHRV           float64
	scorePrevHeartRate float64
	scoreInactivity    float64
	scorePreset        string
	scoreFailAt        string
)

// requiredScoreFlags are the readings every sample must carry unless a preset
// supplies them.
var requiredScoreFlags = []string{"perclos", "yawn-rate", "heart-rate", "pedal-pressure"}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one monitoring sample",
	Long: `Computes the CogniScore of a single sample and prints the alert tier, the
penalties that fired and the actions the tier calls for.

The four core readings are required unless --preset supplies a starting
vector; individual flags then override the preset's readings.

Examples:
  cognishield score --perclos 35 --yawn-rate 1.5 --heart-rate 82 --pedal-pressure 65 --hrv 8
  cognishield score --preset tier3 --inactivity 0
  cognishield score --preset tier2 --fail-at critical`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(cmd); err != nil {
			fail(err)
		}
	},
}

func init() {
	flags := scoreCmd.Flags()
	flags.Float64Var(&scorePerclos, "perclos", 0, "Percentage of eyelid closure (%)")
	flags.Float64Var(&scoreYawnRate, "yawn-rate", 0, "Yawns per minute")
	flags.Float64Var(&scoreHeartRate, "heart-rate", 0, "Heart rate (bpm)")
	flags.Float64Var(&scorePedalPressure, "pedal-pressure", 0, "Accelerator pressure consistency (%)")
	flags.Float64Var(&scoreHRV, "hrv", cogniscore.DefaultHRV, "Heart rate variability (ms)")
	flags.Float64Var(&scorePrevHeartRate, "previous-heart-rate", 0, "Previous heart rate (bpm), defaults to --heart-rate")
	flags.Float64Var(&scoreInactivity, "inactivity", cogniscore.DefaultInactivityTime, "Seconds since the last driver input")
	flags.StringVar(&scorePreset, "preset", "", "Start from a simulator preset (normal, tier0..tier3)")
	flags.StringVar(&scoreFailAt, "fail-at", "", "Exit 1 when the tier reaches this level (warning|caution|critical|emergency)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command) error {
	metrics, err := metricsFromFlags(cmd)
	if err != nil {
		return err
	}

	var failAt *cogniscore.Tier
	if scoreFailAt != "" {
		tier, err := cogniscore.ParseTier(scoreFailAt)
		if err != nil {
			return fmt.Errorf("invalid --fail-at: %w", err)
		}
		failAt = &tier
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	name := "input"
	if scorePreset != "" {
		name = scorePreset
	}
	result := scenario.Run(engine, []scenario.Scenario{{Name: name, Source: "flags", Metrics: metrics}})[0]
	logger.Info("sample scored",
		zap.Float64("score", result.Alert.CogniScore),
		zap.Stringer("tier", result.Alert.Tier),
		zap.Strings("triggers", result.Alert.Triggers))

	if err := outputters.NewOutputterWithWriter(cfg, cmd.OutOrStdout()).Evaluation(result); err != nil {
		return err
	}

	if failAt != nil && result.Alert.Tier >= *failAt {
		exitFunc(1)
	}
	return nil
}

// metricsFromFlags assembles a sample from the preset, if any, and the flags
// that were set. Optional readings stay absent unless given.
func metricsFromFlags(cmd *cobra.Command) (cogniscore.Metrics, error) {
	flags := cmd.Flags()

	var m cogniscore.Metrics
	if scorePreset != "" {
		p, err := simulator.LookupPreset(scorePreset)
		if err != nil {
			return m, err
		}
		m = p.Metrics
	} else {
		var missing []string
		for _, name := range requiredScoreFlags {
			if !flags.Changed(name) {
				missing = append(missing, "--"+name)
			}
		}
		if len(missing) > 0 {
			return m, fmt.Errorf("missing required readings: %v (or use --preset)", missing)
		}
	}

	if flags.Changed("perclos") {
		m.Perclos = scorePerclos
	}
	if flags.Changed("yawn-rate") {
		m.YawnRate = scoreYawnRate
	}
	if flags.Changed("heart-rate") {
		m.HeartRate = scoreHeartRate
	}
	if flags.Changed("pedal-pressure") {
		m.PedalPressure = scorePedalPressure
	}
	if flags.Changed("hrv") {
		m.HRV = cogniscore.Float(scoreHRV)
	}
	if flags.Changed("previous-heart-rate") {
		m.PreviousHeartRate = cogniscore.Float(scorePrevHeartRate)
	}
	if flags.Changed("inactivity") {
		m.InactivityTime = cogniscore.Float(scoreInactivity)
	}
	return m, nil
}
