package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFormatReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(&buf, false, "")
	require.NoError(t, f.FormatReport(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "# CogniShield Scenario Report")
	assert.Contains(t, out, "**Calibration:** default")
	assert.Contains(t, out, "| Scenarios | 3 |")
	assert.Contains(t, out, "| Failed | 1 |")
	assert.Contains(t, out, "| ❌ | early fatigue | `night.scenario.yaml` | 33 | TIER 1 | TIER 2 |")
	assert.Contains(t, out, "| ⚠️ | microsleep |")
	assert.Contains(t, out, "### early fatigue")
	assert.Contains(t, out, "> Outcome differs from the baseline snapshot.")
	assert.NotContains(t, out, "### rested")
	assert.Contains(t, out, "✗ 1 failed, 1 drifted")
}

func TestMarkdownVerboseAndPassing(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(&buf, true, "")
	require.NoError(t, f.FormatReport(passingReport()))

	out := buf.String()
	assert.Contains(t, out, "### normal")
	assert.Contains(t, out, "| TIER 3 | 2 |")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestMarkdownFormatEvaluation(t *testing.T) {
	var buf bytes.Buffer
	f := NewMarkdownFormatter(&buf, false, "")
	require.NoError(t, f.FormatEvaluation(sampleReport().Results[1]))

	out := buf.String()
	assert.Contains(t, out, "CogniScore: **33** / 100, TIER 1 (`caution`)")
	assert.Contains(t, out, "| HRV fatigue (5-8 ms) | 10 |")
	assert.Contains(t, out, "- Gentle Haptics")
}

func TestMarkdownWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	f := NewMarkdownFormatter(nil, false, path)
	require.NoError(t, f.FormatReport(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Conclusion")
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a \| b`, escapeCell("a | b"))
}
