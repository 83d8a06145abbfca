package cogniscore

import (
	"errors"
	"fmt"
	"sort"
)

// Threshold validation errors.
var (
	ErrMissingFamily     = errors.New("missing threshold family")
	ErrMissingBreakpoint = errors.New("missing breakpoint")
	ErrNotMonotonic      = errors.New("breakpoints not ordered by severity")
	ErrUnknownFamily     = errors.New("unknown threshold family")
)

// Direction says which way a reading gets worse.
type Direction int

const (
	// HigherIsWorse grades readings at or above a breakpoint.
	HigherIsWorse Direction = iota
	// LowerIsWorse grades readings at or below a breakpoint.
	LowerIsWorse
)

// Reaches reports whether value is at or past limit in this direction.
// NaN never reaches anything.
func (d Direction) Reaches(value, limit float64) bool {
	if d == LowerIsWorse {
		return value <= limit
	}
	return value >= limit
}

// Breakpoint is a named severity boundary.
type Breakpoint struct {
	Name  string  `json:"name" yaml:"name" mapstructure:"name"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// Table is one family's breakpoints, ordered from least to most severe.
type Table []Breakpoint

// Lookup returns the value of the named breakpoint.
func (t Table) Lookup(name string) (float64, bool) {
	for _, bp := range t {
		if bp.Name == name {
			return bp.Value, true
		}
	}
	return 0, false
}

// Thresholds maps each graded metric to its breakpoint table. It is the single
// source of calibration data for both scoring and status colouring.
type Thresholds map[Metric]Table

// Families lists the graded metrics in scoring order, with their direction.
var Families = []struct {
	Metric    Metric
	Direction Direction
}{
	{MetricPerclos, HigherIsWorse},
	{MetricYawnRate, HigherIsWorse},
	{MetricPedalPressure, LowerIsWorse},
	{MetricHeartRate, LowerIsWorse},
	{MetricHRV, LowerIsWorse},
}

// DirectionOf returns the direction of a graded metric.
func DirectionOf(metric Metric) (Direction, bool) {
	for _, f := range Families {
		if f.Metric == metric {
			return f.Direction, true
		}
	}
	return HigherIsWorse, false
}

// DefaultThresholds returns a fresh copy of the built-in calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MetricPerclos: {
			{"normal", 20}, {"mild", 30}, {"moderate", 50}, {"severe", 70}, {"critical", 80},
		},
		MetricYawnRate: {
			{"normal", 0.5}, {"mild", 1}, {"moderate", 2}, {"severe", 3}, {"critical", 4},
		},
		MetricPedalPressure: {
			{"normal", 85}, {"slight", 70}, {"delayed", 55}, {"sluggish", 40}, {"critical", 20},
		},
		MetricHeartRate: {
			{"normal", 65}, {"fatigue", 60}, {"severe", 55}, {"critical", 50},
		},
		MetricHRV: {
			{"normal", 10}, {"fatigue", 8}, {"moderate", 5}, {"severe", 3}, {"critical", 2},
		},
	}
}

// Clone returns a deep copy.
func (t Thresholds) Clone() Thresholds {
	out := make(Thresholds, len(t))
	for metric, table := range t {
		out[metric] = append(Table(nil), table...)
	}
	return out
}

// Lookup returns a single breakpoint value.
func (t Thresholds) Lookup(metric Metric, name string) (float64, bool) {
	table, ok := t[metric]
	if !ok {
		return 0, false
	}
	return table.Lookup(name)
}

// Merge returns a copy of t with every family present in override replaced.
func (t Thresholds) Merge(override Thresholds) Thresholds {
	out := t.Clone()
	for metric, table := range override {
		out[metric] = append(Table(nil), table...)
	}
	return out
}

// Validate checks that every family is present, carries the breakpoints the
// scoring rules reference, and is ordered by severity in its direction.
func (t Thresholds) Validate() error {
	var errs []error

	known := make(map[Metric]bool, len(Families))
	for _, f := range Families {
		known[f.Metric] = true
	}
	unknown := make([]string, 0)
	for metric := range t {
		if !known[metric] {
			unknown = append(unknown, string(metric))
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownFamily, name))
	}

	for _, f := range Families {
		table, ok := t[f.Metric]
		if !ok || len(table) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingFamily, f.Metric))
			continue
		}
		for _, name := range requiredBreakpoints(f.Metric) {
			if _, ok := table.Lookup(name); !ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s", ErrMissingBreakpoint, f.Metric, name))
			}
		}
		for i := 1; i < len(table); i++ {
			prev, cur := table[i-1], table[i]
			if cur.Value == prev.Value || f.Direction.Reaches(prev.Value, cur.Value) {
				errs = append(errs, fmt.Errorf("%w: %s.%s (%g) then %s (%g)",
					ErrNotMonotonic, f.Metric, prev.Name, prev.Value, cur.Name, cur.Value))
			}
		}
	}

	return errors.Join(errs...)
}
