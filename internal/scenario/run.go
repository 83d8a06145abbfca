package scenario

import (
	"time"

	"github.com/dotcommander/cognishield/internal/cogniscore"
)

// Result is the evaluation of one scenario.
type Result struct {
	Scenario      Scenario                  `json:"scenario"`
	Alert         cogniscore.AlertTier      `json:"alert"`
	Contributions []cogniscore.Contribution `json:"contributions"`
	Drifted       bool                      `json:"drifted,omitempty"`
}

// Checked reports whether the scenario pins an expected tier.
func (r Result) Checked() bool {
	return r.Scenario.Expect != nil
}

// Passed reports whether the classified tier matches the expectation.
// Unchecked scenarios always pass.
func (r Result) Passed() bool {
	return r.Scenario.Expect == nil || *r.Scenario.Expect == r.Alert.Tier
}

// Run scores every scenario with engine, preserving order.
func Run(engine *cogniscore.Engine, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		res := engine.Calculate(s.Metrics)
		contributions := res.Contributions
		if contributions == nil {
			contributions = []cogniscore.Contribution{}
		}
		results = append(results, Result{
			Scenario:      s,
			Alert:         cogniscore.Classify(res),
			Contributions: contributions,
		})
	}
	return results
}

// Report is a complete evaluation run.
type Report struct {
	Calibration string        `json:"calibration"`
	Results     []Result      `json:"results"`
	Duration    time.Duration `json:"duration"`
	Baseline    string        `json:"baseline,omitempty"`
}

// Failed returns the results whose tier did not match the expectation.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// Drifted returns the results that differ from the baseline snapshot.
func (r Report) Drifted() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Drifted {
			out = append(out, res)
		}
	}
	return out
}

// TierCounts tallies results per classified tier.
func (r Report) TierCounts() map[cogniscore.Tier]int {
	counts := make(map[cogniscore.Tier]int)
	for _, res := range r.Results {
		counts[res.Alert.Tier]++
	}
	return counts
}

// OK reports whether every expectation held and nothing drifted.
func (r Report) OK() bool {
	return len(r.Failed()) == 0 && len(r.Drifted()) == 0
}
