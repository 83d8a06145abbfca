package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotcommander/cognishield/internal/dashboard"
	"github.com/dotcommander/cognishield/internal/emergency"
	"github.com/dotcommander/cognishield/internal/simulator"
	"github.com/spf13/cobra"
)

var dashboardPreset string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive wellness monitoring page",
	Long: `Opens the interactive monitoring page. Adjust each reading with the arrow
keys or jump to a preset with n and 0-3; the CogniScore, tier, triggers and
actions update on every change. Reaching the emergency tier opens the
acknowledgement countdown.

Logs go to --log-file only, since the page owns the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDashboard(cmd); err != nil {
			fail(err)
		}
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardPreset, "preset", "p", "", "Preset to start from (normal, tier0..tier3)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	events, sink := dashboard.EventSink(64)
	scheduler := emergency.NewScheduler(cmd.Context(), emergency.NewCountdown(cfg.Countdown.Seconds), cfg.Countdown.Interval,
		emergency.WithLogger(logger),
		emergency.WithEventHandler(sink))
	defer scheduler.Close()

	var opts []simulator.SessionOption
	opts = append(opts, simulator.WithLogger(logger))
	if dashboardPreset != "" {
		p, err := simulator.LookupPreset(dashboardPreset)
		if err != nil {
			return err
		}
		opts = append(opts, simulator.WithInitialMetrics(p.Metrics))
	}
	session := simulator.NewSession(engine, scheduler, opts...)

	p := tea.NewProgram(dashboard.New(session, events), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
