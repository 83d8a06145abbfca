package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/emergency"
	"github.com/dotcommander/cognishield/internal/simulator"
)

const helpText = "↑/↓ select  ←/→ adjust  H/L ×10  n 0-3 presets  r reset  a acknowledge  q quit"

// View renders the page.
func (m Model) View() string {
	frame := m.session.Frame()

	header := m.styles.Header.
		Background(lipgloss.Color(frame.Display.Ambient)).
		Foreground(lipgloss.Color("#f8fafc")).
		Render(fmt.Sprintf("CogniShield  %s  %s", frame.Display.Badge, strings.ToUpper(string(frame.Tier.AlertLevel))))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Render(m.renderSliders(frame)),
		m.styles.Panel.Render(m.renderScore(frame)),
	)

	sections := []string{header, body}
	if frame.Alarm.Visible() {
		sections = append(sections, m.renderModal(frame.Alarm))
	}
	if len(m.lines) > 0 {
		sections = append(sections, m.styles.Muted.Render(m.log.View()))
	}
	if m.status != "" {
		sections = append(sections, m.styles.Muted.Render(m.status))
	}
	sections = append(sections, m.styles.Help.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSliders(frame simulator.Frame) string {
	engine := m.session.Engine()
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Sensors"))
	sb.WriteString("\n")

	for i, s := range simulator.Sliders {
		value, _ := frame.Metrics.Get(s.Metric)
		status := engine.Status(s.Metric, value)
		color := simulator.StatusColors[status.Level]

		label := m.styles.Label.Render("  " + s.Label)
		if i == m.selected {
			label = m.styles.Selected.Render("› " + s.Label)
		}
		badge := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(status.Level.String())
		sb.WriteString(fmt.Sprintf("%s %s %7s %s\n",
			label,
			m.bar.ViewAs(s.Fraction(value)),
			strconv.FormatFloat(value, 'f', s.Precision, 64),
			badge))
	}
	return sb.String()
}

func (m Model) renderScore(frame simulator.Frame) string {
	at := frame.Tier
	tierStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(frame.Display.Gauge))

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("CogniScore"))
	sb.WriteString("\n")
	sb.WriteString(tierStyle.Render(fmt.Sprintf("%s / 100", strconv.FormatFloat(at.CogniScore, 'f', -1, 64))))
	sb.WriteString("\n")
	sb.WriteString(m.gauge.ViewAs(at.CogniScore / cogniscore.MaxScore))
	sb.WriteString("\n")
	if frame.Display.Banner != "" {
		sb.WriteString(tierStyle.Render(frame.Display.Banner))
		sb.WriteString("\n")
	}
	if frame.Display.Haptic != simulator.HapticNone {
		sb.WriteString(m.styles.Muted.Render("haptics: " + string(frame.Display.Haptic)))
		sb.WriteString("\n")
	}

	if len(at.Triggers) > 0 {
		sb.WriteString("\nTriggers\n")
		for _, t := range at.Triggers {
			sb.WriteString("  • " + t + "\n")
		}
	}

	sb.WriteString("\nActions\n")
	for _, a := range at.Actions {
		sb.WriteString("  • " + a + "\n")
	}
	return sb.String()
}

func (m Model) renderModal(snap emergency.Snapshot) string {
	var sb strings.Builder
	if snap.Escalating() {
		sb.WriteString(m.styles.Alert.Render("EMERGENCY PROTOCOL ACTIVE"))
		sb.WriteString("\n\n")
		for _, step := range emergency.EscalationSteps {
			sb.WriteString("• " + step + "\n")
		}
		sb.WriteString("\nPress a to acknowledge")
		return m.styles.Modal.Render(sb.String())
	}

	sb.WriteString(m.styles.Alert.Render("DRIVER ACKNOWLEDGEMENT REQUIRED"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Auto pull over in %d s\n", snap.Remaining))
	fraction := 0.0
	if snap.Seconds > 0 {
		fraction = float64(snap.Remaining) / float64(snap.Seconds)
	}
	sb.WriteString(m.bar.ViewAs(fraction))
	sb.WriteString("\n\nPress a to acknowledge")
	return m.styles.Modal.Render(sb.String())
}
