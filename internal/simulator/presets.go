package simulator

import (
	"fmt"
	"sort"

	"github.com/dotcommander/cognishield/internal/cogniscore"
)

// Preset is a named metric vector that replaces the whole sample at once.
type Preset struct {
	Name        string
	Description string
	Metrics     cogniscore.Metrics
}

// Baseline is the alert, rested driver the session starts from and returns to
// after an acknowledgement.
func Baseline() cogniscore.Metrics {
	return cogniscore.Metrics{
		Perclos:           15,
		YawnRate:          0.3,
		HeartRate:         72,
		PedalPressure:     85,
		HRV:               cogniscore.Float(15),
		PreviousHeartRate: cogniscore.Float(72),
		InactivityTime:    cogniscore.Float(0),
	}
}

// presets are keyed by the tier they were calibrated to demonstrate. The
// score they produce is whatever the thresholds say.
var presets = map[string]Preset{
	"normal": {
		Name:        "normal",
		Description: "alert and rested",
		Metrics:     Baseline(),
	},
	"tier0": {
		Name:        "tier0",
		Description: "monotony, occasional yawning",
		Metrics: cogniscore.Metrics{
			Perclos: 25, YawnRate: 0.7, HeartRate: 75, PedalPressure: 78,
			HRV: cogniscore.Float(12), PreviousHeartRate: cogniscore.Float(75), InactivityTime: cogniscore.Float(0),
		},
	},
	"tier1": {
		Name:        "tier1",
		Description: "early fatigue",
		Metrics: cogniscore.Metrics{
			Perclos: 35, YawnRate: 1.5, HeartRate: 82, PedalPressure: 65,
			HRV: cogniscore.Float(8), PreviousHeartRate: cogniscore.Float(82), InactivityTime: cogniscore.Float(2),
		},
	},
	"tier2": {
		Name:        "tier2",
		Description: "high drowsiness",
		Metrics: cogniscore.Metrics{
			Perclos: 55, YawnRate: 2.5, HeartRate: 58, PedalPressure: 45,
			HRV: cogniscore.Float(4), PreviousHeartRate: cogniscore.Float(58), InactivityTime: cogniscore.Float(5),
		},
	},
	"tier3": {
		Name:        "tier3",
		Description: "microsleep, incapacitation",
		Metrics: cogniscore.Metrics{
			Perclos: 75, YawnRate: 3.5, HeartRate: 42, PedalPressure: 15,
			HRV: cogniscore.Float(1.5), PreviousHeartRate: cogniscore.Float(65), InactivityTime: cogniscore.Float(12),
		},
	},
}

// LookupPreset returns a preset by name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	p.Metrics = clone(p.Metrics)
	return p, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns every preset in name order.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		p, _ := LookupPreset(name)
		out = append(out, p)
	}
	return out
}

func clone(m cogniscore.Metrics) cogniscore.Metrics {
	out := m
	if m.HRV != nil {
		out.HRV = cogniscore.Float(*m.HRV)
	}
	if m.PreviousHeartRate != nil {
		out.PreviousHeartRate = cogniscore.Float(*m.PreviousHeartRate)
	}
	if m.InactivityTime != nil {
		out.InactivityTime = cogniscore.Float(*m.InactivityTime)
	}
	return out
}
