package output

import (
	"io"
	"os"
	"strconv"

	"github.com/dotcommander/cognishield/internal/scenario"
	"golang.org/x/term"
)

// Formatter renders evaluation output in one format.
type Formatter interface {
	// FormatReport renders a scenario run.
	FormatReport(report *scenario.Report) error
	// FormatEvaluation renders a single scored sample.
	FormatEvaluation(result scenario.Result) error
}

// isTerminal reports whether w is a terminal, for colour and animation.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatScore drops a trailing ".0" so whole scores print as integers.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// expectation renders the expected tier, or "-" when none is pinned.
func expectation(r scenario.Result) string {
	if r.Scenario.Expect == nil {
		return "-"
	}
	return r.Scenario.Expect.String()
}
