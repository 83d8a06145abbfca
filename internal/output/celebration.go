package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// printCelebration shows a short sparkle animation for a clean run. When
// animate is false only the final frame is written.
func printCelebration(w io.Writer, msg string, animate bool) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if !animate {
		fmt.Fprintln(w, green.Render(msg))
		return
	}

	bold := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	frames := []struct {
		text  string
		delay time.Duration
	}{
		{green.Render(msg), 120 * time.Millisecond},
		{yellow.Render("✨ " + msg + " ✨"), 180 * time.Millisecond},
		{bold.Render("🛡 " + msg + " 🛡"), 240 * time.Millisecond},
		{green.Render(msg), 0},
	}

	for i, frame := range frames {
		if i > 0 {
			fmt.Fprint(w, "\r\033[K")
		}
		fmt.Fprint(w, frame.text)
		if frame.delay > 0 {
			time.Sleep(frame.delay)
		}
	}
	fmt.Fprintln(w)
}
