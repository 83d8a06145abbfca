package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/dotcommander/cognishield/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testConfig installs a default configuration for the duration of the test.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	old := cfg
	cfg = &config.Config{
		Format:    "console",
		LogLevel:  "warn",
		Countdown: config.CountdownConfig{Seconds: 10, Interval: time.Second},
		Limits:    config.LimitsConfig{HeartRateDrop: 20, Inactivity: 10},
		Scenarios: config.ScenarioConfig{Root: "."},
	}
	t.Cleanup(func() { cfg = old })
	return cfg
}

// resetFlags restores every local flag of cmd to its default and clears Changed.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset()
	t.Cleanup(reset)
}

// mockExit replaces exitFunc and returns a pointer to the last exit code,
// -1 when exit was not called.
func mockExit(t *testing.T) *int {
	t.Helper()
	code := -1
	original := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = original })
	return &code
}

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}
