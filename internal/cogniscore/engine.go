package cogniscore

import (
	"fmt"
	"math"
	"strconv"
)

// MaxScore is the ceiling of the composite score.
const MaxScore = 100.0

// Default limits for the two rules that are not breakpoint tables.
const (
	DefaultDropLimit        = 20.0
	DefaultDropPoints       = 35.0
	DefaultInactivityLimit  = 10.0
	DefaultInactivityPoints = 30.0
)

// band is one penalty step of a family. Breakpoint names the threshold the
// reading is compared against.
type band struct {
	Breakpoint string
	Label      string
	Points     float64
}

// family is the penalty ladder for one metric, most severe band first.
type family struct {
	Metric Metric
	Title  string
	Unit   string
	Bands  []band
}

// penaltyRules is the scoring ladder, in evaluation order. Only the first
// matching band of a family contributes.
var penaltyRules = []family{
	{
		Metric: MetricPerclos, Title: "PERCLOS", Unit: "%",
		Bands: []band{
			{"critical", "critical", 35},
			{"severe", "severe", 30},
			{"moderate", "moderate", 20},
			{"mild", "mild", 10},
			{"normal", "elevated", 5},
		},
	},
	{
		Metric: MetricYawnRate, Title: "Yawn rate", Unit: "/min",
		Bands: []band{
			{"critical", "critical", 32},
			{"severe", "severe", 25},
			{"moderate", "moderate", 15},
			{"mild", "mild", 8},
		},
	},
	{
		Metric: MetricPedalPressure, Title: "Pedal pressure", Unit: "%",
		Bands: []band{
			{"critical", "critical", 30},
			{"sluggish", "sluggish", 20},
			{"delayed", "delayed", 12},
			{"slight", "slight distraction", 5},
		},
	},
	{
		Metric: MetricHeartRate, Title: "Heart rate", Unit: " bpm",
		Bands: []band{
			{"critical", "critical", 28},
			{"severe", "severe", 22},
			{"fatigue", "fatigue", 15},
		},
	},
	{
		Metric: MetricHRV, Title: "HRV", Unit: " ms",
		Bands: []band{
			{"critical", "critical", 32},
			{"severe", "severe", 25},
			{"moderate", "moderate", 18},
			{"fatigue", "fatigue", 10},
		},
	},
}

func requiredBreakpoints(metric Metric) []string {
	for _, f := range penaltyRules {
		if f.Metric == metric {
			names := make([]string, 0, len(f.Bands))
			for _, b := range f.Bands {
				names = append(names, b.Breakpoint)
			}
			return names
		}
	}
	return nil
}

// Contribution is one penalty that fired during scoring.
type Contribution struct {
	Metric  Metric  `json:"metric" yaml:"metric"`
	Band    string  `json:"band" yaml:"band"`
	Points  float64 `json:"points" yaml:"points"`
	Trigger string  `json:"trigger" yaml:"trigger"`
}

// Result is the output of scoring: a score in [0, 100] and the reasons that
// contributed to it, in evaluation order.
type Result struct {
	Score         float64        `json:"score" yaml:"score"`
	Triggers      []string       `json:"triggers" yaml:"triggers"`
	Contributions []Contribution `json:"contributions,omitempty" yaml:"contributions,omitempty"`
}

type compiledBand struct {
	name    string
	limit   float64
	points  float64
	trigger string
}

type compiledFamily struct {
	metric    Metric
	direction Direction
	bands     []compiledBand
}

// Engine scores Metrics against a fixed set of thresholds. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	thresholds       Thresholds
	families         []compiledFamily
	dropLimit        float64
	dropPoints       float64
	inactivityLimit  float64
	inactivityPoints float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds replaces the calibration table. Families missing from t keep
// their defaults.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = e.thresholds.Merge(t)
	}
}

// WithDropLimit sets the heart-rate drop (bpm) that must be exceeded, and the
// points it adds.
func WithDropLimit(limit, points float64) Option {
	return func(e *Engine) {
		e.dropLimit = limit
		e.dropPoints = points
	}
}

// WithInactivityLimit sets the inactivity (seconds) that must be exceeded, and
// the points it adds.
func WithInactivityLimit(limit, points float64) Option {
	return func(e *Engine) {
		e.inactivityLimit = limit
		e.inactivityPoints = points
	}
}

// NewEngine builds an Engine. It fails only when the thresholds are invalid.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		thresholds:       DefaultThresholds(),
		dropLimit:        DefaultDropLimit,
		dropPoints:       DefaultDropPoints,
		inactivityLimit:  DefaultInactivityLimit,
		inactivityPoints: DefaultInactivityPoints,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	e.families = compile(e.thresholds)
	return e, nil
}

// MustNewEngine is NewEngine that panics on error. Use it with literal
// calibration only.
func MustNewEngine(opts ...Option) *Engine {
	e, err := NewEngine(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

var defaultEngine = MustNewEngine()

// Default returns the engine built from the default thresholds.
func Default() *Engine {
	return defaultEngine
}

// Thresholds returns a copy of the calibration in force.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds.Clone()
}

func compile(t Thresholds) []compiledFamily {
	out := make([]compiledFamily, 0, len(penaltyRules))
	for _, f := range penaltyRules {
		dir, _ := DirectionOf(f.Metric)
		cf := compiledFamily{metric: f.Metric, direction: dir}
		for i, b := range f.Bands {
			limit, _ := t.Lookup(f.Metric, b.Breakpoint)
			var span string
			if i == 0 {
				op := ">"
				if dir == LowerIsWorse {
					op = "<"
				}
				span = op + formatNumber(limit) + f.Unit
			} else {
				worse, _ := t.Lookup(f.Metric, f.Bands[i-1].Breakpoint)
				lo, hi := limit, worse
				if dir == LowerIsWorse {
					lo, hi = worse, limit
				}
				span = formatNumber(lo) + "-" + formatNumber(hi) + f.Unit
			}
			cf.bands = append(cf.bands, compiledBand{
				name:    b.Breakpoint,
				limit:   limit,
				points:  b.Points,
				trigger: fmt.Sprintf("%s %s (%s)", f.Title, b.Label, span),
			})
		}
		out = append(out, cf)
	}
	return out
}

// Calculate scores m. The score is the sum of independent per-family
// penalties, clamped to MaxScore. Heart rate may contribute twice: once for
// its absolute level and once for a sudden drop.
func (e *Engine) Calculate(m Metrics) Result {
	r := m.Resolve()
	res := Result{Triggers: make([]string, 0, len(e.families)+2)}

	add := func(metric Metric, bandName string, points float64, trigger string) {
		res.Score += points
		res.Triggers = append(res.Triggers, trigger)
		res.Contributions = append(res.Contributions, Contribution{
			Metric: metric, Band: bandName, Points: points, Trigger: trigger,
		})
	}

	for _, f := range e.families {
		value := readingFor(r, f.metric)
		if b, ok := f.match(value); ok {
			add(f.metric, b.name, b.points, b.trigger)
		}
		if f.metric != MetricHeartRate {
			continue
		}
		drop := r.PreviousHeartRate - r.HeartRate
		if drop > e.dropLimit {
			add(MetricPreviousHeartRate, "drop", e.dropPoints,
				fmt.Sprintf("Sudden heart rate drop (>%s bpm)", formatNumber(drop)))
		}
	}

	if r.InactivityTime > e.inactivityLimit {
		add(MetricInactivityTime, "inactive", e.inactivityPoints,
			fmt.Sprintf("No input for %s+ seconds", formatNumber(r.InactivityTime)))
	}

	res.Score = math.Max(0, math.Min(res.Score, MaxScore))
	return res
}

func (f compiledFamily) match(value float64) (compiledBand, bool) {
	for _, b := range f.bands {
		if f.direction.Reaches(value, b.limit) {
			return b, true
		}
	}
	return compiledBand{}, false
}

func readingFor(r Resolved, metric Metric) float64 {
	switch metric {
	case MetricPerclos:
		return r.Perclos
	case MetricYawnRate:
		return r.YawnRate
	case MetricPedalPressure:
		return r.PedalPressure
	case MetricHeartRate:
		return r.HeartRate
	case MetricHRV:
		return r.HRV
	case MetricPreviousHeartRate:
		return r.PreviousHeartRate
	case MetricInactivityTime:
		return r.InactivityTime
	}
	return math.NaN()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CalculateCogniScore scores m with the default engine.
func CalculateCogniScore(m Metrics) Result {
	return defaultEngine.Calculate(m)
}
