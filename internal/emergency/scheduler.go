package emergency

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the wall-clock length of one countdown unit.
const DefaultInterval = time.Second

// Scheduler drives a Countdown from a ticker. Each armed episode gets its own
// goroutine, cancelled on acknowledgement, dismissal, expiry or Close.
type Scheduler struct {
	countdown *Countdown
	interval  time.Duration
	onEvent   func(Event)
	logger    *zap.Logger

	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithEventHandler registers a callback for every transition and tick. It runs
// on the ticker goroutine for ticks and on the caller's goroutine otherwise,
// and must not call back into the Scheduler synchronously.
func WithEventHandler(fn func(Event)) SchedulerOption {
	return func(s *Scheduler) {
		s.onEvent = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// NewScheduler wraps c. Episodes end when ctx is done.
func NewScheduler(ctx context.Context, c *Countdown, interval time.Duration, opts ...SchedulerOption) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		countdown: c,
		interval:  interval,
		onEvent:   func(Event) {},
		logger:    zap.NewNop(),
		parent:    ctx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Arm starts counting if the countdown accepts it.
func (s *Scheduler) Arm() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.countdown.Arm()
	if !ok {
		return ev, false
	}
	s.stopLocked()

	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx, ev.Episode)

	s.logger.Info("emergency countdown armed",
		zap.String("episode", ev.Episode),
		zap.Int("seconds", ev.Remaining))
	s.onEvent(ev)
	return ev, true
}

func (s *Scheduler) run(ctx context.Context, episode string) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ev, ok := s.countdown.tick(episode)
			if !ok {
				return
			}
			if ev.To == StateExpired {
				s.logger.Warn("emergency countdown expired, escalating",
					zap.String("episode", ev.Episode),
					zap.Strings("steps", EscalationSteps))
			} else {
				s.logger.Debug("emergency countdown tick",
					zap.String("episode", ev.Episode),
					zap.Int("remaining", ev.Remaining))
			}
			s.onEvent(ev)
			if ev.To == StateExpired {
				return
			}
		}
	}
}

// Acknowledge cancels the running episode and answers the modal.
func (s *Scheduler) Acknowledge() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	ev, err := s.countdown.Acknowledge()
	if err != nil {
		return ev, err
	}
	s.logger.Info("emergency acknowledged",
		zap.String("episode", ev.Episode),
		zap.Stringer("from", ev.From),
		zap.Int("remaining", ev.Remaining))
	s.onEvent(ev)
	return ev, nil
}

// Dismiss cancels the running episode and closes the modal.
func (s *Scheduler) Dismiss() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	ev, ok := s.countdown.Dismiss()
	if !ok {
		return ev, false
	}
	s.logger.Info("emergency dismissed",
		zap.String("episode", ev.Episode),
		zap.Stringer("from", ev.From))
	s.onEvent(ev)
	return ev, true
}

// Snapshot returns the countdown state.
func (s *Scheduler) Snapshot() Snapshot {
	return s.countdown.Snapshot()
}

// Close cancels any running episode and waits for its goroutine to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

// stopLocked cancels without waiting, so a handler blocked on delivery never
// deadlocks an acknowledgement. A late tick is ignored by the countdown.
func (s *Scheduler) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
