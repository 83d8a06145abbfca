// Package simulator holds the state of one monitoring page: the current
// metric vector, its evaluation, and the emergency countdown it drives.
// Every change re-evaluates from scratch; nothing is cached between samples.
package simulator

import (
	"fmt"
	"sync"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/emergency"
	"go.uber.org/zap"
)

// Alarm is the acknowledgement countdown a session arms at the emergency tier.
// Both emergency.Countdown and emergency.Scheduler satisfy it.
type Alarm interface {
	Arm() (emergency.Event, bool)
	Acknowledge() (emergency.Event, error)
	Dismiss() (emergency.Event, bool)
	Snapshot() emergency.Snapshot
}

// Frame is everything needed to draw the page once.
type Frame struct {
	Metrics cogniscore.Metrics
	Result  cogniscore.Result
	Tier    cogniscore.AlertTier
	Display Display
	Alarm   emergency.Snapshot
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	engine  *cogniscore.Engine
	alarm   Alarm
	logger  *zap.Logger
	metrics cogniscore.Metrics
	result  cogniscore.Result
	tier    cogniscore.AlertTier
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithInitialMetrics starts the session from m instead of the baseline.
func WithInitialMetrics(m cogniscore.Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = clone(m)
	}
}

// NewSession starts a session at the baseline and evaluates it. A nil engine
// uses the default calibration; a nil alarm gets a manual countdown.
func NewSession(engine *cogniscore.Engine, alarm Alarm, opts ...SessionOption) *Session {
	if engine == nil {
		engine = cogniscore.Default()
	}
	if alarm == nil {
		alarm = emergency.NewCountdown(emergency.DefaultSeconds)
	}
	s := &Session{
		engine:  engine,
		alarm:   alarm,
		logger:  zap.NewNop(),
		metrics: Baseline(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mu.Lock()
	s.evaluateLocked("start")
	s.mu.Unlock()
	return s
}

// Set replaces one reading.
func (s *Session) Set(metric cogniscore.Metric, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.metrics.With(metric, value)
	if !ok {
		return fmt.Errorf("unknown metric %q", metric)
	}
	s.metrics = next
	s.evaluateLocked("set " + string(metric))
	return nil
}

// Nudge moves one reading by a number of slider steps.
func (s *Session) Nudge(metric cogniscore.Metric, steps int) error {
	slider, ok := SliderFor(metric)
	if !ok {
		return fmt.Errorf("no slider for metric %q", metric)
	}
	s.mu.Lock()
	current, _ := s.metrics.Get(metric)
	s.mu.Unlock()
	return s.Set(metric, slider.Nudge(current, steps))
}

// Apply replaces the whole vector with a preset.
func (s *Session) Apply(name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}
	s.Replace(p.Metrics)
	return nil
}

// Replace sets the whole vector.
func (s *Session) Replace(m cogniscore.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = clone(m)
	s.evaluateLocked("replace")
}

// Acknowledge answers the emergency modal and, on success, resets the
// metrics to the baseline.
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.alarm.Acknowledge()
	if err != nil {
		return fmt.Errorf("acknowledge: %w", err)
	}
	s.logger.Info("driver acknowledged",
		zap.String("episode", ev.Episode),
		zap.Stringer("from", ev.From))
	s.metrics = Baseline()
	s.evaluateLocked("acknowledge")
	return nil
}

// Frame returns the current page state.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Frame{
		Metrics: clone(s.metrics),
		Result:  s.result,
		Tier:    s.tier,
		Display: DisplayFor(s.tier),
		Alarm:   s.alarm.Snapshot(),
	}
}

// Tier returns the current classification.
func (s *Session) Tier() cogniscore.AlertTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

// Engine returns the scoring engine in use.
func (s *Session) Engine() *cogniscore.Engine {
	return s.engine
}

func (s *Session) evaluateLocked(cause string) {
	prev := s.tier.Tier
	s.result = s.engine.Calculate(s.metrics)
	s.tier = cogniscore.Classify(s.result)

	s.logger.Debug("metrics evaluated",
		zap.String("cause", cause),
		zap.Float64("score", s.result.Score),
		zap.Stringer("tier", s.tier.Tier),
		zap.Strings("triggers", s.result.Triggers))
	if cause == "start" || prev != s.tier.Tier {
		s.logger.Info("alert tier changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", s.tier.Tier),
			zap.String("level", string(s.tier.AlertLevel)),
			zap.Float64("score", s.tier.CogniScore))
	}

	if s.tier.Tier == cogniscore.TierEmergency {
		s.alarm.Arm()
	} else {
		s.alarm.Dismiss()
	}
}
