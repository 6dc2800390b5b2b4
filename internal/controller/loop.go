package controller

import (
	"context"
	"time"

	"github.com/markusressel/yaw2go/internal/report"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/markusressel/yaw2go/internal/util"
)

// JourneyEvents notifies about the end of a journey
type JourneyEvents interface {
	Done() <-chan struct{}
	// Err returns the error that occurred while ending the journey, if any
	Err() error
}

// Loop feeds measurements into a HeadingController from a single goroutine
// and waits for the run to finalize.
type Loop struct {
	controller   *HeadingController
	journey      JourneyEvents
	clock        util.Clock
	staleTimeout time.Duration
}

// NewLoop creates a control loop. If staleTimeout is > 0 the run is finalized
// when no measurement arrives within staleTimeout after the journey has ended.
// Otherwise a silent measurement stream keeps the loop running until ctx is cancelled.
func NewLoop(controller *HeadingController, journey JourneyEvents, clock util.Clock, staleTimeout time.Duration) *Loop {
	return &Loop{
		controller:   controller,
		journey:      journey,
		clock:        clock,
		staleTimeout: staleTimeout,
	}
}

// Run processes measurements until the controller finalizes, an error occurs or ctx is done
func (l *Loop) Run(ctx context.Context, measurements <-chan float64) (report.Report, error) {
	journeyDone := l.journey.Done()
	journeyEnded := false

	var stale chan struct{}
	var watchdog util.Timer
	defer func() {
		if watchdog != nil {
			watchdog.Stop()
		}
	}()
	armWatchdog := func() {
		if l.staleTimeout <= 0 {
			return
		}
		if watchdog != nil {
			watchdog.Stop()
		}
		fired := make(chan struct{})
		stale = fired
		watchdog = l.clock.AfterFunc(l.staleTimeout, func() {
			close(fired)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return report.Report{}, ctx.Err()

		case yaw, ok := <-measurements:
			if !ok {
				ui.Warning("Measurement stream has been closed")
				measurements = nil
				continue
			}
			finalized, err := l.controller.Update(yaw)
			if err != nil {
				return report.Report{}, err
			}
			if finalized {
				return l.controller.Report(), nil
			}
			if journeyEnded {
				armWatchdog()
			}

		case <-journeyDone:
			journeyDone = nil
			journeyEnded = true
			if err := l.journey.Err(); err != nil {
				return report.Report{}, err
			}
			ui.Debug("Journey ended, waiting for the next measurement to finalize")
			armWatchdog()

		case <-stale:
			stale = nil
			if l.controller.FinalizeStale() {
				ui.Warning("No yaw measurement received for %s, finalizing with last known yaw", l.staleTimeout)
				return l.controller.Report(), nil
			}
		}
	}
}
