package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader()
	require.NoError(t, err)
	return l
}

func TestParseYAML(t *testing.T) {
	content := `
scenarios:
  - name: rested
    expectTier: normal
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72, pedalPressure: 85}
  - name: microsleep
    description: every family in its worst band
    expectTier: 3
    metrics:
      perclos: 85
      yawnRate: 4.5
      heartRate: 45
      pedalPressure: 15
      hrv: 1.5
      previousHeartRate: 70
      inactivityTime: 12
`
	got, err := newLoader(t).Parse("drive.scenario.yaml", []byte(content))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "rested", got[0].Name)
	assert.Equal(t, "drive.scenario.yaml", got[0].Source)
	require.NotNil(t, got[0].Expect)
	assert.Equal(t, cogniscore.TierNormal, *got[0].Expect)
	assert.Nil(t, got[0].Metrics.HRV)

	assert.Equal(t, "every family in its worst band", got[1].Description)
	require.NotNil(t, got[1].Expect)
	assert.Equal(t, cogniscore.TierEmergency, *got[1].Expect)
	require.NotNil(t, got[1].Metrics.HRV)
	assert.Equal(t, 1.5, *got[1].Metrics.HRV)
	assert.Equal(t, 12.0, *got[1].Metrics.InactivityTime)
}

func TestParseJSON(t *testing.T) {
	content := `{"scenarios": [{"name": "early fatigue", "expectTier": "caution",
		"metrics": {"perclos": 35, "yawnRate": 1.5, "heartRate": 82, "pedalPressure": 65, "hrv": 8}}]}`

	got, err := newLoader(t).Parse("fatigue.scenario.json", []byte(content))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Expect)
	assert.Equal(t, cogniscore.TierCaution, *got[0].Expect)
}

func TestParseNoExpectation(t *testing.T) {
	content := "scenarios:\n  - name: free\n    metrics: {perclos: 1, yawnRate: 0, heartRate: 70, pedalPressure: 90}\n"
	got, err := newLoader(t).Parse("a.scenario.yaml", []byte(content))
	require.NoError(t, err)
	assert.Nil(t, got[0].Expect)
}

func TestParseInvalid(t *testing.T) {
	content := "scenarios:\n  - name: partial\n    metrics: {perclos: 1}\n"
	_, err := newLoader(t).Parse("bad.scenario.yaml", []byte(content))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "bad.scenario.yaml")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.scenario.yml")
	content := "scenarios:\n  - name: x\n    metrics: {perclos: 1, yawnRate: 0, heartRate: 70, pedalPressure: 90}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = newLoader(t).LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseExpect(t *testing.T) {
	tests := []struct {
		in      any
		want    cogniscore.Tier
		wantErr bool
	}{
		{-1, cogniscore.TierNormal, false},
		{2, cogniscore.TierCritical, false},
		{3.0, cogniscore.TierEmergency, false},
		{"warning", cogniscore.TierWarning, false},
		{"EMERGENCY", cogniscore.TierEmergency, false},
		{7, 0, true},
		{true, 0, true},
	}
	for _, tt := range tests {
		got, err := parseExpect(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBuiltinsMatchDefaultEngine(t *testing.T) {
	builtins := Builtins()
	require.NotEmpty(t, builtins)

	results := Run(cogniscore.Default(), builtins)
	for _, r := range results {
		assert.True(t, r.Checked(), r.Scenario.Name)
		assert.True(t, r.Passed(), "%s classified %s", r.Scenario.Name, r.Alert.Tier)
		assert.Equal(t, BuiltinSource, r.Scenario.Source)
	}
}

func TestRun(t *testing.T) {
	critical := cogniscore.TierCritical
	scenarios := []Scenario{
		{Name: "rested", Metrics: cogniscore.Metrics{Perclos: 15, YawnRate: 0.3, HeartRate: 72, PedalPressure: 85}},
		{Name: "wrong guess", Expect: &critical, Metrics: cogniscore.Metrics{
			Perclos: 35, YawnRate: 1.5, HeartRate: 82, PedalPressure: 65, HRV: cogniscore.Float(8),
		}},
	}

	results := Run(cogniscore.Default(), scenarios)
	require.Len(t, results, 2)

	assert.Equal(t, 0.0, results[0].Alert.CogniScore)
	assert.NotNil(t, results[0].Contributions)
	assert.False(t, results[0].Checked())
	assert.True(t, results[0].Passed())

	assert.Equal(t, 33.0, results[1].Alert.CogniScore)
	assert.Equal(t, cogniscore.TierCaution, results[1].Alert.Tier)
	assert.False(t, results[1].Passed())

	report := Report{Results: results}
	assert.Len(t, report.Failed(), 1)
	assert.Empty(t, report.Drifted())
	assert.False(t, report.OK())
	assert.Equal(t, map[cogniscore.Tier]int{cogniscore.TierNormal: 1, cogniscore.TierCaution: 1}, report.TierCounts())

	report.Results[0].Drifted = true
	assert.Len(t, report.Drifted(), 1)
}
