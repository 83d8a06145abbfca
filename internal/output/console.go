package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/scenario"
	"github.com/dotcommander/cognishield/internal/simulator"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	out      io.Writer
	quiet    bool
	verbose  bool
	colorize bool
	animate  bool
}

// NewConsoleFormatter creates a new ConsoleFormatter writing to out. Colour
// and animation are enabled only when out is a terminal.
func NewConsoleFormatter(out io.Writer, quiet, verbose bool) *ConsoleFormatter {
	tty := isTerminal(out)
	return &ConsoleFormatter{
		out:      out,
		quiet:    quiet,
		verbose:  verbose,
		colorize: tty,
		animate:  tty,
	}
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize || color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (f *ConsoleFormatter) tierStyle(at cogniscore.AlertTier) lipgloss.Style {
	return f.style(simulator.DisplayFor(at).Gauge).Bold(f.colorize)
}

// FormatEvaluation prints one scored sample: score, tier, penalties and the
// actions the tier calls for.
func (f *ConsoleFormatter) FormatEvaluation(r scenario.Result) error {
	if f.quiet {
		fmt.Fprintln(f.out, r.Alert.Tier)
		return nil
	}

	at := r.Alert
	tier := f.tierStyle(at)
	dim := f.style("8")

	fmt.Fprintf(f.out, "CogniScore %s/100  %s %s\n",
		tier.Render(formatScore(at.CogniScore)),
		tier.Render(at.Tier.String()),
		dim.Render(strings.ToUpper(string(at.AlertLevel))))

	if banner := simulator.DisplayFor(at).Banner; banner != "" {
		fmt.Fprintf(f.out, "%s\n", tier.Render(banner))
	}

	if len(r.Contributions) > 0 {
		fmt.Fprintln(f.out)
		width := 0
		for _, c := range r.Contributions {
			if len(c.Trigger) > width {
				width = len(c.Trigger)
			}
		}
		for _, c := range r.Contributions {
			fmt.Fprintf(f.out, "  %-*s %s\n", width, c.Trigger, dim.Render("+"+formatScore(c.Points)))
		}
	}

	if len(at.Actions) > 0 {
		fmt.Fprintf(f.out, "\nActions\n")
		for _, a := range at.Actions {
			fmt.Fprintf(f.out, "  • %s\n", a)
		}
	}

	return nil
}

// FormatReport prints the scenario run
func (f *ConsoleFormatter) FormatReport(report *scenario.Report) error {
	if f.quiet {
		return nil
	}

	f.printResults(report)
	f.printSummary(report)
	f.printConclusion(report)
	return nil
}

// printResults prints one line per scenario, failing and drifted ones always
func (f *ConsoleFormatter) printResults(report *scenario.Report) {
	nameWidth := 0
	for _, r := range report.Results {
		if len(r.Scenario.Name) > nameWidth {
			nameWidth = len(r.Scenario.Name)
		}
	}

	red := f.style("9")
	yellow := f.style("3")
	green := f.style("10")
	dim := f.style("8")

	for _, r := range report.Results {
		if r.Passed() && !r.Drifted && !f.verbose {
			continue
		}

		status := green.Render("✓")
		switch {
		case !r.Passed():
			status = red.Render("✗")
		case r.Drifted:
			status = yellow.Render("~")
		}

		line := fmt.Sprintf("%s %-*s  %-7s %5s", status, nameWidth, r.Scenario.Name,
			f.tierStyle(r.Alert).Render(r.Alert.Tier.String()), formatScore(r.Alert.CogniScore))
		if !r.Passed() {
			line += red.Render(fmt.Sprintf("  expected %s", expectation(r)))
		}
		if r.Drifted {
			line += yellow.Render("  drifted from baseline")
		}
		line += dim.Render(fmt.Sprintf("  [%s]", r.Scenario.Source))
		fmt.Fprintln(f.out, line)

		if f.verbose || !r.Passed() {
			for _, trig := range r.Alert.Triggers {
				fmt.Fprintf(f.out, "    %s\n", dim.Render("• "+trig))
			}
		}
	}
}

// printSummary prints totals and the tier distribution
func (f *ConsoleFormatter) printSummary(report *scenario.Report) {
	if len(report.Results) == 0 {
		fmt.Fprintln(f.out, "No scenarios found")
		return
	}

	counts := report.TierCounts()
	tiers := make([]cogniscore.Tier, 0, len(counts))
	for t := range counts {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] > tiers[j] })
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		parts = append(parts, fmt.Sprintf("%s %d", t, counts[t]))
	}

	passed := len(report.Results) - len(report.Failed())
	fmt.Fprintf(f.out, "\n%d/%d passed, %d drifted (%v)\n",
		passed, len(report.Results), len(report.Drifted()),
		report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.out, "%s\n", f.style("8").Render(strings.Join(parts, " | ")))
}

// printConclusion prints the conclusion message
func (f *ConsoleFormatter) printConclusion(report *scenario.Report) {
	if len(report.Results) == 0 || !report.OK() {
		return
	}
	fmt.Fprintln(f.out)
	printCelebration(f.out, "✓ All passed", f.animate)
}
