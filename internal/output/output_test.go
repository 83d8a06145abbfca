package output

import (
	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/scenario"
)

func tierPtr(t cogniscore.Tier) *cogniscore.Tier { return &t }

// sampleReport has one passing, one failing and one drifted scenario.
func sampleReport() *scenario.Report {
	scenarios := []scenario.Scenario{
		{Name: "rested", Source: "builtin", Expect: tierPtr(cogniscore.TierNormal),
			Metrics: cogniscore.Metrics{Perclos: 15, YawnRate: 0.3, HeartRate: 72, PedalPressure: 85}},
		{Name: "early fatigue", Source: "night.scenario.yaml", Expect: tierPtr(cogniscore.TierCritical),
			Metrics: cogniscore.Metrics{Perclos: 35, YawnRate: 1.5, HeartRate: 82, PedalPressure: 65, HRV: cogniscore.Float(8)}},
		{Name: "microsleep", Source: "night.scenario.yaml",
			Metrics: cogniscore.Metrics{Perclos: 85, YawnRate: 4.5, HeartRate: 45, PedalPressure: 15, HRV: cogniscore.Float(1.5)}},
	}
	results := scenario.Run(cogniscore.Default(), scenarios)
	results[2].Drifted = true
	return &scenario.Report{Calibration: "default", Results: results}
}

func passingReport() *scenario.Report {
	results := scenario.Run(cogniscore.Default(), scenario.Builtins())
	return &scenario.Report{Calibration: "default", Results: results}
}
