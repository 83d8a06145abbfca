package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCmd(t *testing.T) {
	assert.Equal(t, "score", scoreCmd.Use)
	assert.NotEmpty(t, scoreCmd.Short)
	assert.NotNil(t, scoreCmd.Run)
	for _, name := range append(requiredScoreFlags, "hrv", "previous-heart-rate", "inactivity", "preset", "fail-at") {
		assert.NotNil(t, scoreCmd.Flags().Lookup(name), name)
	}
}

func TestMetricsFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		want    cogniscore.Metrics
		wantErr string
	}{
		{
			name:  "core readings",
			flags: map[string]string{"perclos": "35", "yawn-rate": "1.5", "heart-rate": "82", "pedal-pressure": "65"},
			want:  cogniscore.Metrics{Perclos: 35, YawnRate: 1.5, HeartRate: 82, PedalPressure: 65},
		},
		{
			name: "optional readings",
			flags: map[string]string{
				"perclos": "10", "yawn-rate": "0", "heart-rate": "60", "pedal-pressure": "90",
				"hrv": "4", "previous-heart-rate": "85", "inactivity": "12",
			},
			want: cogniscore.Metrics{
				Perclos: 10, HeartRate: 60, PedalPressure: 90,
				HRV: cogniscore.Float(4), PreviousHeartRate: cogniscore.Float(85), InactivityTime: cogniscore.Float(12),
			},
		},
		{
			name:    "missing readings",
			flags:   map[string]string{"perclos": "35"},
			wantErr: "--yawn-rate",
		},
		{
			name:  "preset with override",
			flags: map[string]string{"preset": "tier1", "perclos": "5"},
			want:  cogniscore.Metrics{Perclos: 5, YawnRate: 1.5, HeartRate: 82, PedalPressure: 65},
		},
		{
			name:    "unknown preset",
			flags:   map[string]string{"preset": "tier9"},
			wantErr: "unknown preset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, scoreCmd)
			for k, v := range tt.flags {
				require.NoError(t, scoreCmd.Flags().Set(k, v))
			}

			got, err := metricsFromFlags(scoreCmd)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Perclos, got.Perclos)
			assert.Equal(t, tt.want.YawnRate, got.YawnRate)
			assert.Equal(t, tt.want.HeartRate, got.HeartRate)
			assert.Equal(t, tt.want.PedalPressure, got.PedalPressure)
			if tt.want.HRV != nil {
				require.NotNil(t, got.HRV)
				assert.Equal(t, *tt.want.HRV, *got.HRV)
			}
			if tt.want.PreviousHeartRate != nil {
				require.NotNil(t, got.PreviousHeartRate)
				assert.Equal(t, *tt.want.PreviousHeartRate, *got.PreviousHeartRate)
			}
			if tt.want.InactivityTime != nil {
				require.NotNil(t, got.InactivityTime)
				assert.Equal(t, *tt.want.InactivityTime, *got.InactivityTime)
			}
		})
	}
}

func TestRunScoreConsole(t *testing.T) {
	testConfig(t)
	resetFlags(t, scoreCmd)
	code := mockExit(t)

	require.NoError(t, scoreCmd.Flags().Set("preset", "tier3"))
	var buf bytes.Buffer
	scoreCmd.SetOut(&buf)
	t.Cleanup(func() { scoreCmd.SetOut(nil) })

	require.NoError(t, runScore(scoreCmd))
	out := buf.String()
	assert.Contains(t, out, "CogniScore 100/100")
	assert.Contains(t, out, "TIER 3")
	assert.Contains(t, out, "Auto Pull Over")
	assert.Equal(t, -1, *code)
}

func TestRunScoreJSON(t *testing.T) {
	c := testConfig(t)
	c.Format = "json"
	resetFlags(t, scoreCmd)
	mockExit(t)

	for k, v := range map[string]string{"perclos": "15", "yawn-rate": "0.3", "heart-rate": "72", "pedal-pressure": "85", "inactivity": "12"} {
		require.NoError(t, scoreCmd.Flags().Set(k, v))
	}
	var buf bytes.Buffer
	scoreCmd.SetOut(&buf)
	t.Cleanup(func() { scoreCmd.SetOut(nil) })

	require.NoError(t, runScore(scoreCmd))

	var doc struct {
		Name  string               `json:"name"`
		Alert cogniscore.AlertTier `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "input", doc.Name)
	assert.Equal(t, 30.0, doc.Alert.CogniScore)
	assert.Equal(t, cogniscore.TierCaution, doc.Alert.Tier)
	assert.Equal(t, []string{"No input for 12+ seconds"}, doc.Alert.Triggers)
}

func TestRunScoreFailAt(t *testing.T) {
	tests := []struct {
		preset   string
		failAt   string
		wantCode int
	}{
		{"tier3", "critical", 1},
		{"tier1", "critical", -1},
		{"normal", "warning", -1},
		{"tier2", "3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.preset+"_"+tt.failAt, func(t *testing.T) {
			c := testConfig(t)
			c.Quiet = true
			resetFlags(t, scoreCmd)
			code := mockExit(t)

			require.NoError(t, scoreCmd.Flags().Set("preset", tt.preset))
			require.NoError(t, scoreCmd.Flags().Set("fail-at", tt.failAt))
			var buf bytes.Buffer
			scoreCmd.SetOut(&buf)
			t.Cleanup(func() { scoreCmd.SetOut(nil) })

			require.NoError(t, runScore(scoreCmd))
			assert.Equal(t, tt.wantCode, *code)
		})
	}
}

func TestRunScoreInvalidFailAt(t *testing.T) {
	testConfig(t)
	resetFlags(t, scoreCmd)

	require.NoError(t, scoreCmd.Flags().Set("preset", "normal"))
	require.NoError(t, scoreCmd.Flags().Set("fail-at", "panic"))
	assert.ErrorContains(t, runScore(scoreCmd), "invalid --fail-at")
}
