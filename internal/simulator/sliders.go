package simulator

import (
	"math"

	"github.com/dotcommander/cognishield/internal/cogniscore"
)

// Slider is the input range of one reading on the dashboard.
type Slider struct {
	Metric cogniscore.Metric
	Label  string
	Min    float64
	Max    float64
	Step   float64
	// Precision is the number of decimals shown.
	Precision int
}

// Sliders lists the adjustable readings in display order. The previous heart
// rate is not a slider; it tracks the last heart-rate reading.
var Sliders = []Slider{
	{cogniscore.MetricPerclos, "PERCLOS (%)", 0, 100, 0.5, 1},
	{cogniscore.MetricYawnRate, "Yawn Rate (/min)", 0, 5, 0.1, 2},
	{cogniscore.MetricHeartRate, "Heart Rate (bpm)", 40, 120, 1, 0},
	{cogniscore.MetricPedalPressure, "Pedal Pressure (%)", 0, 100, 1, 0},
	{cogniscore.MetricHRV, "HRV (ms)", 0, 20, 0.1, 1},
	{cogniscore.MetricInactivityTime, "Inactivity (sec)", 0, 20, 1, 0},
}

// SliderFor returns the slider of a metric.
func SliderFor(metric cogniscore.Metric) (Slider, bool) {
	for _, s := range Sliders {
		if s.Metric == metric {
			return s, true
		}
	}
	return Slider{}, false
}

// Nudge moves value by steps slider steps, snapped to the step grid and kept
// inside the slider range. This is an input-widget limit; the engine itself
// accepts any value.
func (s Slider) Nudge(value float64, steps int) float64 {
	v := value + float64(steps)*s.Step
	v = math.Round(v/s.Step) * s.Step
	// strip float noise from the step multiplication
	scale := math.Pow(10, float64(s.Precision+1))
	v = math.Round(v*scale) / scale
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Fraction is value's position in the range, in [0, 1].
func (s Slider) Fraction(value float64) float64 {
	if s.Max == s.Min || math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(1, (value-s.Min)/(s.Max-s.Min)))
}
