package scenario

import (
	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/simulator"
)

// BuiltinSource is the Source of scenarios that ship with the binary.
const BuiltinSource = "builtin"

// builtinExpect pins each preset to the tier the default thresholds give it.
// tier0 scores 5 and tier2 scores 80, so their names do not match their tiers.
var builtinExpect = map[string]cogniscore.Tier{
	"normal": cogniscore.TierNormal,
	"tier0":  cogniscore.TierNormal,
	"tier1":  cogniscore.TierCaution,
	"tier2":  cogniscore.TierEmergency,
	"tier3":  cogniscore.TierEmergency,
}

// Builtins returns one scenario per simulator preset, in preset-name order.
func Builtins() []Scenario {
	presets := simulator.Presets()
	out := make([]Scenario, 0, len(presets))
	for _, p := range presets {
		s := Scenario{
			Name:        p.Name,
			Description: p.Description,
			Source:      BuiltinSource,
			Metrics:     p.Metrics,
		}
		if tier, ok := builtinExpect[p.Name]; ok {
			s.Expect = &tier
		}
		out = append(out, s)
	}
	return out
}
