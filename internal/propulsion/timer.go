package propulsion

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/yaw2go/internal/actuator"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/markusressel/yaw2go/internal/util"
)

const NeutralCommand = 0

var ErrJourneyStarted = errors.New("journey has already been started")

// Timer drives a single bounded journey: it commands the configured speed
// and automatically commands the neutral speed once the duration has elapsed.
type Timer struct {
	actuator actuator.Actuator
	speed    int
	duration time.Duration
	clock    util.Clock

	mu        sync.Mutex
	started   bool
	driving   bool
	scheduled util.Timer
	err       error

	done     chan struct{}
	doneOnce sync.Once
}

func NewTimer(actuator actuator.Actuator, speed int, duration time.Duration, clock util.Clock) *Timer {
	return &Timer{
		actuator: actuator,
		speed:    speed,
		duration: duration,
		clock:    clock,
		done:     make(chan struct{}),
	}
}

// StartJourney commands the journey speed and schedules the stop.
// It may only be called once, subsequent calls return ErrJourneyStarted.
func (t *Timer) StartJourney() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrJourneyStarted
	}

	err := t.actuator.Command(t.speed)
	if err != nil {
		return fmt.Errorf("starting journey: %w", err)
	}
	t.started = true
	t.driving = true
	t.scheduled = t.clock.AfterFunc(t.duration, t.expire)

	ui.Info("Journey started with speed %d for %s", t.speed, t.duration)
	return nil
}

func (t *Timer) expire() {
	_ = t.stop(true)
}

// Stop commands the neutral speed and ends the journey.
// Calling it more than once only repeats the neutral command.
func (t *Timer) Stop() error {
	return t.stop(false)
}

func (t *Timer) stop(expired bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.actuator.Command(NeutralCommand)
	if err != nil {
		err = fmt.Errorf("stopping journey: %w", err)
		if expired {
			// must be visible before Done is closed
			t.err = err
		}
	}

	if t.scheduled != nil {
		t.scheduled.Stop()
		t.scheduled = nil
	}

	if t.driving {
		t.driving = false
		t.doneOnce.Do(func() {
			close(t.done)
		})
		ui.Info("Journey ended")
	}

	return err
}

func (t *Timer) IsDriving() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.driving
}

// Done is closed when the journey has ended
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

// Err returns the error of the scheduled stop, if any
func (t *Timer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
