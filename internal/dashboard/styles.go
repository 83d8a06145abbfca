package dashboard

import "github.com/charmbracelet/lipgloss"

// Styles holds the fixed styles of the page. Tier-dependent colours come from
// simulator.Display at render time.
type Styles struct {
	Header   lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Modal    lipgloss.Style
	Alert    lipgloss.Style
}

// DefaultStyles returns the dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#475569")).Padding(0, 1),
		Label:    lipgloss.NewStyle().Width(20),
		Selected: lipgloss.NewStyle().Width(20).Bold(true).Foreground(lipgloss.Color("#38bdf8")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
		Modal: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#dc2626")).
			Padding(1, 3).Align(lipgloss.Center),
		Alert: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
	}
}
