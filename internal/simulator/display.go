package simulator

import "github.com/dotcommander/cognishield/internal/cogniscore"

// HapticLevel is the simulated steering-wheel vibration.
type HapticLevel string

const (
	HapticNone   HapticLevel = "none"
	HapticGentle HapticLevel = "gentle"
	HapticHeavy  HapticLevel = "heavy"
)

// Display is everything the presentation picks from a tier. It is a pure
// lookup on tier and alert level and never looks at the score.
type Display struct {
	Ambient string
	Gauge   string
	Haptic  HapticLevel
	Banner  string
	Badge   string
}

var ambientColors = map[cogniscore.AlertLevel]string{
	cogniscore.LevelEmergency: "#dc2626",
	cogniscore.LevelCritical:  "#ea580c",
	cogniscore.LevelCaution:   "#eab308",
	cogniscore.LevelWarning:   "#3b82f6",
	cogniscore.LevelNormal:    "#1f2937",
}

var banners = map[cogniscore.Tier]string{
	cogniscore.TierCaution:   "Gentle haptic feedback active",
	cogniscore.TierCritical:  "Heavy haptic feedback and voice prompt",
	cogniscore.TierEmergency: "CRITICAL - Emergency protocol initiated",
}

// StatusColors maps a reading grade to a colour.
var StatusColors = map[cogniscore.StatusLevel]string{
	cogniscore.StatusOK:       "#16a34a",
	cogniscore.StatusMild:     "#facc15",
	cogniscore.StatusModerate: "#ca8a04",
	cogniscore.StatusSevere:   "#ea580c",
	cogniscore.StatusCritical: "#dc2626",
}

// DisplayFor selects colours, haptics and banner for a tier.
func DisplayFor(at cogniscore.AlertTier) Display {
	d := Display{
		Ambient: ambientColors[at.AlertLevel],
		Gauge:   ambientColors[at.AlertLevel],
		Haptic:  HapticNone,
		Banner:  banners[at.Tier],
		Badge:   at.Tier.String(),
	}
	if d.Ambient == "" {
		d.Ambient = ambientColors[cogniscore.LevelNormal]
	}
	if at.AlertLevel == cogniscore.LevelNormal || d.Gauge == "" {
		d.Gauge = "#22c55e"
	}
	switch at.Tier {
	case cogniscore.TierCritical:
		d.Haptic = HapticHeavy
	case cogniscore.TierCaution:
		d.Haptic = HapticGentle
	}
	return d
}
