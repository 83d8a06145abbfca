package cogniscore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tier is the discrete escalation level derived from a score.
type Tier int

// Tiers, from no escalation to emergency.
const (
	TierNormal    Tier = -1
	TierWarning   Tier = 0
	TierCaution   Tier = 1
	TierCritical  Tier = 2
	TierEmergency Tier = 3
)

// String returns "NORMAL" or "TIER n".
func (t Tier) String() string {
	if t == TierNormal {
		return "NORMAL"
	}
	return "TIER " + strconv.Itoa(int(t))
}

// ParseTier accepts an integer id ("-1".."3") or an alert level name.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		for _, spec := range TierTable {
			if int(spec.Tier) == n {
				return spec.Tier, nil
			}
		}
		return TierNormal, fmt.Errorf("unknown tier: %d", n)
	}
	for _, spec := range TierTable {
		if strings.EqualFold(string(spec.Level), s) {
			return spec.Tier, nil
		}
	}
	return TierNormal, fmt.Errorf("unknown tier: %q", s)
}

// AlertLevel names a tier.
type AlertLevel string

// Alert levels, one per tier.
const (
	LevelNormal    AlertLevel = "normal"
	LevelWarning   AlertLevel = "warning"
	LevelCaution   AlertLevel = "caution"
	LevelCritical  AlertLevel = "critical"
	LevelEmergency AlertLevel = "emergency"
)

// TierSpec is one row of the tier table.
type TierSpec struct {
	Tier     Tier
	Level    AlertLevel
	MinScore float64
	Actions  []string
}

// TierTable is the authoritative tier mapping, highest tier first. A score
// belongs to the first row whose MinScore it reaches; the last row catches
// everything else.
var TierTable = []TierSpec{
	{TierEmergency, LevelEmergency, 70, []string{"RED ALERT", "Driver Acknowledgement Required", "Auto Pull Over", "SOS Call"}},
	{TierCritical, LevelCritical, 50, []string{"Heavy Haptics", "Voice Prompt", "Take a Break Now"}},
	{TierCaution, LevelCaution, 30, []string{"Gentle Haptics", "Steering Alert", "Stay Alert"}},
	{TierWarning, LevelWarning, 15, []string{"Ambient Light Change", "Coffee Break Suggestion"}},
	{TierNormal, LevelNormal, math.Inf(-1), []string{"System Active"}},
}

// SpecFor returns the table row of a tier.
func SpecFor(t Tier) (TierSpec, bool) {
	for _, spec := range TierTable {
		if spec.Tier == t {
			return spec, true
		}
	}
	return TierSpec{}, false
}

// AlertTier is the classification of one score.
type AlertTier struct {
	Tier       Tier       `json:"tier" yaml:"tier"`
	CogniScore float64    `json:"cogniScore" yaml:"cogniScore"`
	AlertLevel AlertLevel `json:"alertLevel" yaml:"alertLevel"`
	Actions    []string   `json:"actions" yaml:"actions"`
	Triggers   []string   `json:"triggers" yaml:"triggers"`
}

// GetTierFromCogniScore classifies a score. Triggers pass through unchanged
// except at the normal tier, where they are always dropped. Every float64,
// NaN included, maps to exactly one tier; NaN reaches no lower bound and is
// normal.
func GetTierFromCogniScore(score float64, triggers []string) AlertTier {
	spec := TierTable[len(TierTable)-1]
	for _, row := range TierTable {
		if score >= row.MinScore {
			spec = row
			break
		}
	}

	out := AlertTier{
		Tier:       spec.Tier,
		CogniScore: score,
		AlertLevel: spec.Level,
		Actions:    append([]string(nil), spec.Actions...),
		Triggers:   []string{},
	}
	if spec.Tier != TierNormal {
		out.Triggers = append(out.Triggers, triggers...)
	}
	return out
}

// Classify is GetTierFromCogniScore over a scoring Result.
func Classify(r Result) AlertTier {
	return GetTierFromCogniScore(r.Score, r.Triggers)
}

// Evaluate scores m and classifies the result.
func (e *Engine) Evaluate(m Metrics) AlertTier {
	return Classify(e.Calculate(m))
}

// Evaluate scores and classifies m with the default engine.
func Evaluate(m Metrics) AlertTier {
	return defaultEngine.Evaluate(m)
}
