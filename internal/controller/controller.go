package controller

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/yaw2go/internal/actuator"
	"github.com/markusressel/yaw2go/internal/control_loop"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/report"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/markusressel/yaw2go/internal/util"
)

type State int

const (
	StateAwaitingFirstSample State = iota
	StateTracking
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateAwaitingFirstSample:
		return "awaiting_first_sample"
	case StateTracking:
		return "tracking"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

var ErrInvalidDecimation = errors.New("decimation factor must be >= 1")

// Journey is a single bounded propulsion activation
type Journey interface {
	StartJourney() error
	IsDriving() bool
}

// SteeringMapper converts a steering angle in degrees into an actuator command
type SteeringMapper interface {
	Map(degrees float64) int
}

type Parameters struct {
	Kp float64
	// set-point = first accepted yaw - SetPointOffset
	SetPointOffset float64
	// only every n-th raw measurement is processed
	DecimationFactor int
	// number of samples in the rolling RMS error statistic
	ErrorWindowSize int
}

// Status is a point-in-time view of a HeadingController
type Status struct {
	State            string  `json:"state"`
	Driving          bool    `json:"driving"`
	InitialYaw       float64 `json:"initialYaw"`
	SetPoint         float64 `json:"setPoint"`
	LastYaw          float64 `json:"lastYaw"`
	LastOutput       float64 `json:"lastOutput"`
	LastSquaredError float64 `json:"lastSquaredError"`
	RmsError         float64 `json:"rmsError"`
	Received         int     `json:"received"`
	Processed        int     `json:"processed"`
	Discarded        int     `json:"discarded"`
}

// HeadingController holds the vehicle heading at a set-point with a proportional
// control law. The set-point is derived from the first accepted measurement.
type HeadingController struct {
	params   Parameters
	loop     control_loop.ControlLoop
	mapper   SteeringMapper
	steering actuator.Actuator
	journey  Journey
	recorder *recorder.Recorder
	clock    util.Clock

	mu               sync.Mutex
	state            State
	setPoint         float64
	sampleCounter    int
	lastYaw          float64
	lastOutput       float64
	lastSquaredError float64
	startTime        time.Time
	initialYaw       float64
	finalYaw         float64
	processed        int
	discarded        int
	// zero-padded until ErrorWindowSize samples have been processed
	errorWindow *rolling.PointPolicy
}

func New(
	params Parameters,
	mapper SteeringMapper,
	steering actuator.Actuator,
	journey Journey,
	recorder *recorder.Recorder,
	clock util.Clock,
) (*HeadingController, error) {
	if params.DecimationFactor < 1 {
		return nil, ErrInvalidDecimation
	}
	windowSize := params.ErrorWindowSize
	if windowSize < 1 {
		windowSize = 1
	}

	return &HeadingController{
		params:      params,
		loop:        control_loop.NewProportionalControlLoop(params.Kp),
		mapper:      mapper,
		steering:    steering,
		journey:     journey,
		recorder:    recorder,
		clock:       clock,
		state:       StateAwaitingFirstSample,
		errorWindow: util.CreateRollingWindow(windowSize),
	}, nil
}

// Update processes a raw yaw measurement (degrees).
// Returns true if the journey has ended and this measurement finalized the run.
func (c *HeadingController) Update(yaw float64) (finalized bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateFinalized {
		ui.Debug("Ignoring yaw %.2f°, controller is finalized", yaw)
		return false, nil
	}

	index := c.sampleCounter
	c.sampleCounter++
	if index%c.params.DecimationFactor != 0 {
		c.discarded++
		return false, nil
	}

	c.processed++
	c.lastYaw = yaw

	if c.state == StateAwaitingFirstSample {
		return false, c.prime(yaw)
	}

	elapsed := c.clock.Now().Sub(c.startTime).Seconds()
	err = c.update(yaw, elapsed)
	if err != nil {
		return false, err
	}

	if !c.journey.IsDriving() {
		c.finalize(yaw)
		return true, nil
	}
	return false, nil
}

// prime derives the set-point from the first accepted measurement,
// points the steering at it and starts the journey.
// The controller only starts tracking once the journey has been started.
func (c *HeadingController) prime(yaw float64) error {
	c.initialYaw = yaw
	c.setPoint = yaw - c.params.SetPointOffset

	ui.Info("Initial yaw: %.2f°", yaw)
	ui.Info("Set-point: %.2f°", c.setPoint)

	err := c.steer(c.setPoint)
	if err != nil {
		return err
	}

	c.startTime = c.clock.Now()
	err = c.journey.StartJourney()
	if err != nil {
		return err
	}
	c.state = StateTracking

	return c.update(yaw, 0)
}

func (c *HeadingController) update(yaw float64, elapsed float64) error {
	e := c.setPoint - yaw
	squaredError := e * e
	output := c.loop.Loop(c.setPoint, yaw)

	c.lastOutput = output
	c.lastSquaredError = squaredError
	c.errorWindow.Append(squaredError)
	c.recorder.Append(recorder.Sample{
		ElapsedSeconds: elapsed,
		SquaredError:   squaredError,
		HeadingCommand: output,
	})

	ui.Debug("Yaw: %.2f°, error: %.2f°, output(steer degree): %.2f°", yaw, e, output)
	return c.steer(output)
}

func (c *HeadingController) steer(degrees float64) error {
	command := c.mapper.Map(degrees)
	return c.steering.Command(command)
}

func (c *HeadingController) finalize(yaw float64) {
	c.finalYaw = yaw
	c.state = StateFinalized
	ui.Info("Drive ended, final yaw: %.2f°", yaw)
}

// FinalizeStale finalizes a tracking controller with the last accepted yaw.
// Returns false if the controller was not tracking.
func (c *HeadingController) FinalizeStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateTracking {
		return false
	}
	c.finalize(c.lastYaw)
	return true
}

func (c *HeadingController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *HeadingController) SetPoint() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPoint
}

// Samples returns the sample recorder of this controller
func (c *HeadingController) Samples() *recorder.Recorder {
	return c.recorder
}

// Report returns the diagnostic bundle of the run
func (c *HeadingController) Report() report.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return report.Report{
		Kp:         c.params.Kp,
		InitialYaw: c.initialYaw,
		SetPoint:   c.setPoint,
		FinalYaw:   c.finalYaw,
		Samples:    c.recorder.Samples(),
	}
}

func (c *HeadingController) Status() Status {
	driving := c.journey.IsDriving()

	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:            c.state.String(),
		Driving:          driving,
		InitialYaw:       c.initialYaw,
		SetPoint:         c.setPoint,
		LastYaw:          c.lastYaw,
		LastOutput:       c.lastOutput,
		LastSquaredError: c.lastSquaredError,
		RmsError:         math.Sqrt(util.GetWindowAvg(c.errorWindow)),
		Received:         c.sampleCounter,
		Processed:        c.processed,
		Discarded:        c.discarded,
	}
}
