package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dotcommander/cognishield/internal/emergency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSimulateFlags(t *testing.T) {
	t.Helper()
	resetFlags(t, simulateCmd)
}

func TestSimulateCmd(t *testing.T) {
	assert.Equal(t, "simulate", simulateCmd.Use)
	assert.NotEmpty(t, simulateCmd.Short)
	assert.NotNil(t, simulateCmd.Run)
	assert.Equal(t, "tier3", simulateCmd.Flags().Lookup("preset").DefValue)
}

func TestRunSimulateExpires(t *testing.T) {
	testConfig(t)
	resetSimulateFlags(t)
	require.NoError(t, simulateCmd.Flags().Set("seconds", "2"))
	require.NoError(t, simulateCmd.Flags().Set("interval", "1ms"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, runSimulate(ctx, &buf))

	out := buf.String()
	assert.Contains(t, out, "TIER 3")
	assert.Contains(t, out, "DRIVER ACKNOWLEDGEMENT REQUIRED")
	assert.Contains(t, out, "auto pull over in 2s")
	assert.Contains(t, out, "EMERGENCY PROTOCOL ACTIVE")
	for _, step := range emergency.EscalationSteps {
		assert.Contains(t, out, step)
	}
}

func TestRunSimulateAcknowledged(t *testing.T) {
	testConfig(t)
	resetSimulateFlags(t)
	require.NoError(t, simulateCmd.Flags().Set("preset", "tier2"))
	require.NoError(t, simulateCmd.Flags().Set("seconds", "5"))
	require.NoError(t, simulateCmd.Flags().Set("interval", "10ms"))
	require.NoError(t, simulateCmd.Flags().Set("ack-after", "1"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, runSimulate(ctx, &buf))

	out := buf.String()
	assert.Contains(t, out, "Driver acknowledged with 4s left")
	assert.Contains(t, out, "NORMAL")
	assert.NotContains(t, out, "EMERGENCY PROTOCOL ACTIVE")
}

func TestRunSimulateBelowEmergency(t *testing.T) {
	testConfig(t)
	resetSimulateFlags(t)
	require.NoError(t, simulateCmd.Flags().Set("preset", "tier1"))

	var buf bytes.Buffer
	require.NoError(t, runSimulate(context.Background(), &buf))
	assert.Contains(t, buf.String(), "does not arm the emergency countdown")
	assert.NotContains(t, buf.String(), "DRIVER ACKNOWLEDGEMENT REQUIRED")
}

func TestRunSimulateCancelled(t *testing.T) {
	testConfig(t)
	resetSimulateFlags(t)
	require.NoError(t, simulateCmd.Flags().Set("interval", "1h"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	require.NoError(t, runSimulate(ctx, &buf))
	assert.Contains(t, buf.String(), "interrupted")
}

func TestRunSimulateUnknownPreset(t *testing.T) {
	testConfig(t)
	resetSimulateFlags(t)
	require.NoError(t, simulateCmd.Flags().Set("preset", "tier7"))

	assert.Error(t, runSimulate(context.Background(), &bytes.Buffer{}))
}

func TestRunSimulateJSON(t *testing.T) {
	c := testConfig(t)
	c.Format = "json"
	resetSimulateFlags(t)

	var buf bytes.Buffer
	require.NoError(t, runSimulate(context.Background(), &buf))
	assert.Contains(t, buf.String(), `"cogniScore": 100`)
	assert.NotContains(t, buf.String(), "DRIVER ACKNOWLEDGEMENT REQUIRED")
}
