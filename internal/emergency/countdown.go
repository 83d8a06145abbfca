// Package emergency holds the acknowledgement countdown that follows an
// emergency tier: a single-shot timer whose expiry starts a simulated
// escalation (pull over, SOS call) that stays in force for the episode.
package emergency

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultSeconds is the length of the acknowledgement window.
const DefaultSeconds = 10

// ErrNotCounting is returned when there is nothing to acknowledge.
var ErrNotCounting = errors.New("no emergency countdown to acknowledge")

// State is a countdown state.
type State int

const (
	// StateIdle is armed but not counting.
	StateIdle State = iota
	// StateCounting is waiting for the driver.
	StateCounting
	// StateAcknowledged means the driver responded in time.
	StateAcknowledged
	// StateExpired is the escalation in progress. It ends only by
	// acknowledgement or dismissal, both of which re-arm the modal.
	StateExpired
)

var stateNames = [...]string{"idle", "counting", "acknowledged", "expired"}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EscalationSteps are the simulated actions taken once the countdown expires.
var EscalationSteps = []string{
	"Initiating Auto Pull Over",
	"Hazard Lights Activated",
	"Contacting Emergency Services",
	"SOS Call in Progress",
}

// Event records one state transition.
type Event struct {
	Episode   string `json:"episode"`
	From      State  `json:"from"`
	To        State  `json:"to"`
	Remaining int    `json:"remaining"`
}

// Snapshot is the observable countdown state.
type Snapshot struct {
	Episode   string
	State     State
	Remaining int
	Seconds   int
}

// Escalating reports whether the terminal escalation is in progress.
func (s Snapshot) Escalating() bool {
	return s.State == StateExpired
}

// Visible reports whether the acknowledgement modal should be on screen.
func (s Snapshot) Visible() bool {
	return s.State == StateCounting || s.State == StateExpired
}

// Countdown is the acknowledgement state machine:
//
//	idle -> counting -> acknowledged | expired
//
// It knows nothing about wall-clock time; something else calls Tick once per
// elapsed unit. It is safe for concurrent use.
type Countdown struct {
	mu        sync.Mutex
	seconds   int
	remaining int
	state     State
	episode   string
}

// NewCountdown returns an idle countdown of the given length. Non-positive
// lengths use DefaultSeconds.
func NewCountdown(seconds int) *Countdown {
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	return &Countdown{seconds: seconds, remaining: seconds}
}

func (c *Countdown) transition(to State) Event {
	ev := Event{Episode: c.episode, From: c.state, To: to, Remaining: c.remaining}
	c.state = to
	return ev
}

// Arm starts a new episode from idle or acknowledged. While counting or
// expired it does nothing and reports false.
func (c *Countdown) Arm() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateCounting || c.state == StateExpired {
		return Event{}, false
	}
	c.episode = uuid.NewString()
	c.remaining = c.seconds
	return c.transition(StateCounting), true
}

// Tick counts one unit down. Reaching zero expires the countdown. Outside the
// counting state Tick does nothing and reports false.
func (c *Countdown) Tick() (Event, bool) {
	return c.tick("")
}

// tick counts down only if episode is empty or still current, so a cancelled
// ticker cannot touch a later episode.
func (c *Countdown) tick(episode string) (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCounting || (episode != "" && episode != c.episode) {
		return Event{}, false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		return c.transition(StateExpired), true
	}
	return Event{Episode: c.episode, From: StateCounting, To: StateCounting, Remaining: c.remaining}, true
}

// Acknowledge answers the modal. While counting it stops the countdown; while
// expired it re-arms the modal back to idle.
func (c *Countdown) Acknowledge() (Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateCounting:
		return c.transition(StateAcknowledged), nil
	case StateExpired:
		ev := c.transition(StateIdle)
		c.remaining = c.seconds
		return ev, nil
	default:
		return Event{}, ErrNotCounting
	}
}

// Dismiss closes the modal from outside, e.g. when the tier drops. Counting
// and expired countdowns return to idle.
func (c *Countdown) Dismiss() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCounting && c.state != StateExpired {
		return Event{}, false
	}
	ev := c.transition(StateIdle)
	c.remaining = c.seconds
	return ev, true
}

// Snapshot returns the current state.
func (c *Countdown) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Episode: c.episode, State: c.state, Remaining: c.remaining, Seconds: c.seconds}
}
