// Package scheduler drives the two time-based behaviors of the app: up
// to three configured daily reminder times, and the midnight tick that
// triggers the daily reset. The engine never mutates application state
// itself; it emits events on a channel that the UI update loop consumes,
// so every mutation stays on the single writer.
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// MaxReminders caps the number of configured reminder times.
const MaxReminders = 3

var (
	ErrTooManyReminders = errors.New("scheduler: too many reminder times")
	ErrInvalidTime      = errors.New("scheduler: invalid reminder time")
)

type EventKind string

const (
	EventReminder EventKind = "reminder"
	EventMidnight EventKind = "midnight"
)

type Event struct {
	Kind EventKind
	// Clock is the configured HH:MM for reminder events, empty for
	// midnight.
	Clock string
	At    time.Time
}

type Engine struct {
	mu         sync.Mutex
	times      []string
	lastMinute string
	lastDay    string
	out        chan Event
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    bool
	stopped    bool
	dropped    uint64
	interval   time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithInterval overrides the one-minute poll interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine validates the reminder times ("HH:MM", at most three) and
// builds a stopped engine.
func NewEngine(times []string, opts ...Option) (*Engine, error) {
	if len(times) > MaxReminders {
		return nil, fmt.Errorf("%w: %d configured (max %d)", ErrTooManyReminders, len(times), MaxReminders)
	}
	for _, t := range times {
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTime, t)
		}
	}

	e := &Engine{
		times:    append([]string(nil), times...),
		out:      make(chan Event, 8),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: time.Minute,
		now:      time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// C returns the event channel. It is closed when the engine stops.
func (e *Engine) C() <-chan Event {
	return e.out
}

// Start launches the polling goroutine. The first poll happens one
// interval after Start; the starting minute and day are recorded so
// startup never replays a reminder or a midnight crossing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	now := e.now()
	e.lastMinute = minuteKey(now)
	e.lastDay = dayKey(now)
	go e.loop()
}

// Stop shuts the loop down and waits for it to exit. Safe to call more
// than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Dropped counts events discarded because the consumer fell behind.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// CheckAndFire compares the wall clock (truncated to the minute) against
// the configured reminder times and the last observed day, and returns
// the events due now. Each minute is evaluated at most once.
func (e *Engine) CheckAndFire(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	minute := minuteKey(now)
	if minute == e.lastMinute {
		return nil
	}
	e.lastMinute = minute

	if e.lastDay == "" {
		// First observed tick on an unstarted engine is the baseline;
		// nothing has elapsed yet.
		e.lastDay = dayKey(now)
		return nil
	}

	var due []Event
	if day := dayKey(now); day != e.lastDay {
		e.lastDay = day
		due = append(due, Event{Kind: EventMidnight, At: now})
	}
	clock := now.Format("15:04")
	for _, t := range e.times {
		if t == clock {
			due = append(due, Event{Kind: EventReminder, Clock: t, At: now})
		}
	}
	return due
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, ev := range e.CheckAndFire(e.now()) {
				select {
				case e.out <- ev:
					e.logger.Debug().Str("kind", string(ev.Kind)).Str("clock", ev.Clock).Msg("scheduler event")
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.stopCh:
			return
		}
	}
}

func minuteKey(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
