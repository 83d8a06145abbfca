package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/scenario"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	out        io.Writer
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(out io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		out:        out,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// FormatReport writes the scenario run as Markdown
func (f *MarkdownFormatter) FormatReport(report *scenario.Report) error {
	var builder strings.Builder

	builder.WriteString("# CogniShield Scenario Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Calibration:** %s\n\n", report.Calibration))
	if report.Baseline != "" {
		builder.WriteString(fmt.Sprintf("**Baseline:** %s\n\n", report.Baseline))
	}
	builder.WriteString(fmt.Sprintf("**Duration:** %v\n\n", report.Duration.Round(time.Millisecond)))
	builder.WriteString(strings.Repeat("-", 50) + "\n\n")

	// Summary table
	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Count |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Scenarios | %d |\n", len(report.Results)))
	builder.WriteString(fmt.Sprintf("| Passed | %d |\n", len(report.Results)-len(report.Failed())))
	builder.WriteString(fmt.Sprintf("| Failed | %d |\n", len(report.Failed())))
	builder.WriteString(fmt.Sprintf("| Drifted | %d |\n", len(report.Drifted())))
	builder.WriteString("\n")

	counts := report.TierCounts()
	if len(counts) > 0 {
		builder.WriteString("### Tier distribution\n\n")
		builder.WriteString("| Tier | Scenarios |\n")
		builder.WriteString("|------|-----------|\n")
		tiers := make([]cogniscore.Tier, 0, len(counts))
		for t := range counts {
			tiers = append(tiers, t)
		}
		sort.Slice(tiers, func(i, j int) bool { return tiers[i] > tiers[j] })
		for _, t := range tiers {
			builder.WriteString(fmt.Sprintf("| %s | %d |\n", t, counts[t]))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Results\n\n")
	if len(report.Results) == 0 {
		builder.WriteString("*No scenarios found.*\n\n")
	} else {
		builder.WriteString("| Status | Scenario | Source | Score | Tier | Expected |\n")
		builder.WriteString("|--------|----------|--------|-------|------|----------|\n")
		for _, r := range report.Results {
			builder.WriteString(fmt.Sprintf("| %s | %s | `%s` | %s | %s | %s |\n",
				statusEmoji(r), escapeCell(r.Scenario.Name), r.Scenario.Source,
				formatScore(r.Alert.CogniScore), r.Alert.Tier, expectation(r)))
		}
		builder.WriteString("\n")

		for _, r := range report.Results {
			if !f.verbose && r.Passed() && !r.Drifted {
				continue
			}
			writeMarkdownResult(&builder, r)
		}
	}

	builder.WriteString("## Conclusion\n\n")
	if report.OK() {
		builder.WriteString("✓ All scenarios passed\n")
	} else {
		builder.WriteString(fmt.Sprintf("✗ %d failed, %d drifted\n", len(report.Failed()), len(report.Drifted())))
	}

	return f.write(builder.String())
}

// FormatEvaluation writes a single sample as Markdown
func (f *MarkdownFormatter) FormatEvaluation(r scenario.Result) error {
	var builder strings.Builder
	builder.WriteString("# CogniScore Evaluation\n\n")
	writeMarkdownResult(&builder, r)
	return f.write(builder.String())
}

func writeMarkdownResult(b *strings.Builder, r scenario.Result) {
	b.WriteString(fmt.Sprintf("### %s\n\n", r.Scenario.Name))
	if r.Scenario.Description != "" {
		b.WriteString(fmt.Sprintf("%s\n\n", r.Scenario.Description))
	}
	b.WriteString(fmt.Sprintf("CogniScore: **%s** / 100, %s (`%s`)\n\n",
		formatScore(r.Alert.CogniScore), r.Alert.Tier, r.Alert.AlertLevel))
	if r.Drifted {
		b.WriteString("> Outcome differs from the baseline snapshot.\n\n")
	}

	if len(r.Contributions) > 0 {
		b.WriteString("| Trigger | Points |\n")
		b.WriteString("|---------|--------|\n")
		for _, c := range r.Contributions {
			b.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(c.Trigger), formatScore(c.Points)))
		}
		b.WriteString("\n")
	}

	if len(r.Alert.Actions) > 0 {
		b.WriteString("#### Actions\n\n")
		for _, a := range r.Alert.Actions {
			b.WriteString(fmt.Sprintf("- %s\n", a))
		}
		b.WriteString("\n")
	}
}

func (f *MarkdownFormatter) write(content string) error {
	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	_, err := fmt.Fprint(f.out, content)
	return err
}

// statusEmoji returns an emoji for the result status
func statusEmoji(r scenario.Result) string {
	switch {
	case !r.Passed():
		return "❌"
	case r.Drifted:
		return "⚠️"
	default:
		return "✅"
	}
}

// escapeCell keeps pipes from breaking table rows
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
