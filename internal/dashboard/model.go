// Package dashboard is the interactive terminal page: metric sliders on one
// side, the CogniScore gauge and tier on the other, and the acknowledgement
// modal on top when the emergency tier is reached.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotcommander/cognishield/internal/emergency"
	"github.com/dotcommander/cognishield/internal/simulator"
)

const maxLogLines = 50

// presetKeys maps number keys to simulator presets.
var presetKeys = map[string]string{
	"n": "normal",
	"0": "tier0",
	"1": "tier1",
	"2": "tier2",
	"3": "tier3",
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	session  *simulator.Session
	events   <-chan emergency.Event
	styles   Styles
	gauge    progress.Model
	bar      progress.Model
	log      viewport.Model
	lines    []string
	selected int
	width    int
	height   int
	status   string
	now      func() time.Time
}

// New builds a dashboard over session. events may be nil when the session's
// alarm is not clock-driven.
func New(session *simulator.Session, events <-chan emergency.Event) Model {
	gauge := progress.New(progress.WithDefaultGradient())
	gauge.ShowPercentage = false
	bar := progress.New(progress.WithSolidFill("#64748b"))
	bar.ShowPercentage = false
	bar.Width = 24

	return Model{
		session: session,
		events:  events,
		styles:  DefaultStyles(),
		gauge:   gauge,
		bar:     bar,
		log:     viewport.New(80, 6),
		now:     time.Now,
	}
}

// Init starts listening for countdown events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case EventMsg:
		m.appendLog(describeEvent(emergency.Event(msg)))
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// SetSize updates the layout for a terminal size.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	gw := w/2 - 6
	if gw < 10 {
		gw = 10
	}
	m.gauge.Width = gw
	m.log.Width = w
	m.log.Height = 6
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := m.session.Frame()

	// While the modal is up only acknowledgement and quit are live.
	if frame.Alarm.Visible() {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a", "enter", " ":
			if err := m.session.Acknowledge(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = "acknowledged, metrics reset to baseline"
			m.appendLog("driver acknowledged")
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.selected = (m.selected - 1 + len(simulator.Sliders)) % len(simulator.Sliders)
	case "down", "j", "tab":
		m.selected = (m.selected + 1) % len(simulator.Sliders)
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "H", "pgdown":
		m.nudge(-10)
	case "L", "pgup":
		m.nudge(10)
	case "r":
		m.applyPreset("normal")
	default:
		if name, ok := presetKeys[msg.String()]; ok {
			m.applyPreset(name)
		}
	}
	return m, nil
}

func (m *Model) nudge(steps int) {
	before := m.session.Tier().Tier
	slider := simulator.Sliders[m.selected]
	if err := m.session.Nudge(slider.Metric, steps); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	if after := m.session.Tier().Tier; after != before {
		m.appendLog(fmt.Sprintf("tier %s -> %s", before, after))
	}
}

func (m *Model) applyPreset(name string) {
	before := m.session.Tier().Tier
	if err := m.session.Apply(name); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "preset " + name
	after := m.session.Tier().Tier
	m.appendLog(fmt.Sprintf("preset %s: tier %s -> %s", name, before, after))
}

func (m *Model) appendLog(line string) {
	stamp := m.now().Format("15:04:05")
	m.lines = append(m.lines, stamp+"  "+line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

// Selected returns the index of the highlighted slider.
func (m Model) Selected() int {
	return m.selected
}

// Log returns the event log lines, oldest first.
func (m Model) Log() []string {
	return append([]string(nil), m.lines...)
}

func describeEvent(ev emergency.Event) string {
	switch ev.To {
	case emergency.StateCounting:
		if ev.From == emergency.StateCounting {
			return fmt.Sprintf("countdown %ds", ev.Remaining)
		}
		return fmt.Sprintf("emergency countdown started (%ds)", ev.Remaining)
	case emergency.StateExpired:
		return "no acknowledgement, escalating"
	case emergency.StateAcknowledged:
		return "countdown acknowledged"
	case emergency.StateIdle:
		return "countdown cleared"
	}
	return ev.To.String()
}
