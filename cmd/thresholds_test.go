package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunThresholdsDefault(t *testing.T) {
	testConfig(t)
	resetFlags(t, thresholdsCmd)

	var buf bytes.Buffer
	require.NoError(t, runThresholds(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# calibration: default\n"))
	assert.Less(t, strings.Index(out, "perclos:"), strings.Index(out, "hrv:"))
	assert.Contains(t, out, "{name: critical, value: 80}")
}

func TestRunThresholdsJSON(t *testing.T) {
	c := testConfig(t)
	c.Format = "json"
	resetFlags(t, thresholdsCmd)

	var buf bytes.Buffer
	require.NoError(t, runThresholds(&buf))

	var got cogniscore.Thresholds
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, cogniscore.DefaultThresholds(), got)
}

func TestRunThresholdsWriteThenCheck(t *testing.T) {
	c := testConfig(t)
	c.Quiet = true
	resetFlags(t, thresholdsCmd)
	path := filepath.Join(t.TempDir(), "defaults.yaml")

	require.NoError(t, thresholdsCmd.Flags().Set("write", path))
	var buf bytes.Buffer
	require.NoError(t, runThresholds(&buf))
	assert.Empty(t, buf.String())

	loaded, err := config.LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, cogniscore.DefaultThresholds(), loaded)

	resetFlags(t, thresholdsCmd)
	require.NoError(t, thresholdsCmd.Flags().Set("check", path))
	require.NoError(t, runThresholds(&buf))
	assert.Contains(t, buf.String(), "✓ "+path)
}

func TestRunThresholdsCheckRejectsDisorder(t *testing.T) {
	testConfig(t)
	resetFlags(t, thresholdsCmd)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`perclos:
  - {name: normal, value: 20}
  - {name: mild, value: 60}
  - {name: moderate, value: 50}
  - {name: severe, value: 70}
  - {name: critical, value: 80}
`), 0644))

	require.NoError(t, thresholdsCmd.Flags().Set("check", path))
	assert.Error(t, runThresholds(&bytes.Buffer{}))
}

func TestRunThresholdsCheckRejectsSchema(t *testing.T) {
	testConfig(t)
	resetFlags(t, thresholdsCmd)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("perclos:\n  - {name: normal, value: -3}\n"), 0644))

	require.NoError(t, thresholdsCmd.Flags().Set("check", path))
	err := runThresholds(&bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrSchema)
}
