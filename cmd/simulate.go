package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/cognishield/internal/emergency"
	"github.com/dotcommander/cognishield/internal/outputters"
	"github.com/dotcommander/cognishield/internal/scenario"
	"github.com/dotcommander/cognishield/internal/simulator"
	"github.com/spf13/cobra"
)

var (
	simulatePreset   string
	simulateAckAfter int
	simulateSeconds  int
	simulateInterval time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Walk through the emergency countdown for a preset",
	Long: `Applies a simulator preset and, when it reaches the emergency tier, runs the
acknowledgement countdown in real time, printing each transition.

Without --ack-after the countdown runs out and the escalation sequence is
shown. With --ack-after N the driver acknowledges after N ticks, which stops
the countdown and resets the metrics to the baseline.

Examples:
  cognishield simulate --preset tier3
  cognishield simulate --preset tier2 --ack-after 4
  cognishield simulate --preset tier3 --seconds 3 --interval 200ms`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := runSimulate(ctx, cmd.OutOrStdout()); err != nil {
			fail(err)
		}
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simulatePreset, "preset", "p", "tier3", "Preset to apply (normal, tier0..tier3)")
	simulateCmd.Flags().IntVar(&simulateAckAfter, "ack-after", 0, "Acknowledge after this many ticks (0 = never)")
	simulateCmd.Flags().IntVar(&simulateSeconds, "seconds", 0, "Countdown length (default from config)")
	simulateCmd.Flags().DurationVar(&simulateInterval, "interval", 0, "Tick interval (default from config)")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(ctx context.Context, w io.Writer) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	seconds := cfg.Countdown.Seconds
	if simulateSeconds > 0 {
		seconds = simulateSeconds
	}
	interval := cfg.Countdown.Interval
	if simulateInterval > 0 {
		interval = simulateInterval
	}

	// Room for the arm event, every tick and the final transition.
	events := make(chan emergency.Event, seconds+4)
	scheduler := emergency.NewScheduler(ctx, emergency.NewCountdown(seconds), interval,
		emergency.WithLogger(logger),
		emergency.WithEventHandler(func(ev emergency.Event) {
			select {
			case events <- ev:
			default:
			}
		}))
	defer scheduler.Close()

	session := simulator.NewSession(engine, scheduler, simulator.WithLogger(logger))
	if err := session.Apply(simulatePreset); err != nil {
		return err
	}

	frame := session.Frame()
	preset, _ := simulator.LookupPreset(simulatePreset)
	result := scenario.Result{
		Scenario:      scenario.Scenario{Name: preset.Name, Description: preset.Description, Source: scenario.BuiltinSource, Metrics: frame.Metrics},
		Alert:         frame.Tier,
		Contributions: frame.Result.Contributions,
	}
	if err := outputters.NewOutputterWithWriter(cfg, w).Evaluation(result); err != nil {
		return err
	}
	if cfg.Format != "console" {
		return nil
	}

	if !frame.Alarm.Visible() {
		fmt.Fprintf(w, "\nTier %s does not arm the emergency countdown\n", frame.Tier.Tier)
		return nil
	}

	alert := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626"))
	fmt.Fprintln(w)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "interrupted")
			return nil
		case ev := <-events:
			switch ev.To {
			case emergency.StateCounting:
				if ev.From != emergency.StateCounting {
					fmt.Fprintf(w, "%s\n", alert.Render("DRIVER ACKNOWLEDGEMENT REQUIRED"))
				}
				fmt.Fprintf(w, "  auto pull over in %ds\n", ev.Remaining)
				if simulateAckAfter > 0 && seconds-ev.Remaining >= simulateAckAfter {
					if err := session.Acknowledge(); err != nil {
						return err
					}
					after := session.Frame()
					fmt.Fprintf(w, "Driver acknowledged with %ds left, metrics reset (%s, CogniScore %g)\n",
						ev.Remaining, after.Tier.Tier, after.Tier.CogniScore)
					return nil
				}
			case emergency.StateExpired:
				fmt.Fprintf(w, "%s\n", alert.Render("EMERGENCY PROTOCOL ACTIVE"))
				for _, step := range emergency.EscalationSteps {
					fmt.Fprintf(w, "  • %s\n", step)
				}
				return nil
			}
		}
	}
}
