package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/markusressel/yaw2go/internal/bus"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockJourney struct {
	Started  int
	Driving  bool
	StartErr error
}

func (j *MockJourney) StartJourney() error {
	if j.StartErr != nil {
		return j.StartErr
	}
	j.Started++
	j.Driving = true
	return nil
}

func (j *MockJourney) IsDriving() bool {
	return j.Driving
}

// maps degrees 1:1 onto integer commands in [-90..90]
var identityTable = calibration.Table{
	KnownAngles:   []float64{-90, 90},
	CommandLevels: []int{-90, 90},
}

type fixture struct {
	controller *HeadingController
	steering   *testingutils.RecordingActuator
	journey    *MockJourney
	recorder   *recorder.Recorder
	clock      *testingutils.ManualClock
}

func createController(t *testing.T, params Parameters) fixture {
	mapper, err := calibration.NewCalibrator(identityTable)
	require.NoError(t, err)

	f := fixture{
		steering: &testingutils.RecordingActuator{},
		journey:  &MockJourney{},
		recorder: recorder.New(),
		clock:    testingutils.NewManualClock(),
	}
	f.controller, err = New(params, mapper, f.steering, f.journey, f.recorder, f.clock)
	require.NoError(t, err)
	return f
}

var defaultParams = Parameters{
	Kp:               0.85,
	SetPointOffset:   10,
	DecimationFactor: 1,
	ErrorWindowSize:  10,
}

func TestNew_InvalidDecimation(t *testing.T) {
	for _, factor := range []int{0, -1} {
		// GIVEN
		params := defaultParams
		params.DecimationFactor = factor

		// WHEN
		c, err := New(params, nil, nil, nil, recorder.New(), testingutils.NewManualClock())

		// THEN
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrInvalidDecimation)
	}
}

func TestUpdate_Decimation(t *testing.T) {
	// GIVEN
	params := defaultParams
	params.DecimationFactor = 10
	f := createController(t, params)

	// WHEN
	for i := 0; i < 25; i++ {
		_, err := f.controller.Update(float64(i))
		require.NoError(t, err)
	}

	// THEN
	status := f.controller.Status()
	assert.Equal(t, 25, status.Received)
	assert.Equal(t, 3, status.Processed)
	assert.Equal(t, 22, status.Discarded)
	assert.Equal(t, 3, f.recorder.Len())
	// raw indices 0, 10 and 20 were accepted
	assert.Equal(t, -10.0, f.controller.SetPoint())
	assert.Equal(t, 20.0, status.LastYaw)
	// priming + one command per accepted measurement
	assert.Len(t, f.steering.Commands(), 4)
}

func TestUpdate_FirstMeasurementSetsSetPointOnce(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)
	assert.Equal(t, StateAwaitingFirstSample, f.controller.State())

	// WHEN
	_, _ = f.controller.Update(42.0)

	// THEN
	assert.Equal(t, StateTracking, f.controller.State())
	assert.Equal(t, 32.0, f.controller.SetPoint())
	assert.Equal(t, 1, f.journey.Started)

	// WHEN
	for _, yaw := range []float64{0, -100, 100, 32} {
		_, _ = f.controller.Update(yaw)
	}

	// THEN
	assert.Equal(t, 32.0, f.controller.SetPoint())
	assert.Equal(t, 1, f.journey.Started)
}

func TestUpdate_Scenario(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)

	// WHEN
	finalized, err := f.controller.Update(5.0)

	// THEN
	assert.NoError(t, err)
	assert.False(t, finalized)
	assert.Equal(t, -5.0, f.controller.SetPoint())
	samples := f.recorder.Samples()
	require.Len(t, samples, 1)
	assert.Equal(t, 0.0, samples[0].ElapsedSeconds)
	assert.Equal(t, 100.0, samples[0].SquaredError)
	assert.InDelta(t, -8.5, samples[0].HeadingCommand, 1e-9)
	// priming command for the set-point itself, then the first update
	assert.Equal(t, []int{-5, -8}, f.steering.Commands())

	// WHEN
	f.clock.Advance(500 * time.Millisecond)
	finalized, err = f.controller.Update(-3.0)

	// THEN
	assert.NoError(t, err)
	assert.False(t, finalized)
	samples = f.recorder.Samples()
	require.Len(t, samples, 2)
	assert.Equal(t, 0.5, samples[1].ElapsedSeconds)
	assert.Equal(t, 4.0, samples[1].SquaredError)
	assert.InDelta(t, -1.7, samples[1].HeadingCommand, 1e-9)
	assert.Equal(t, []int{-5, -8, -2}, f.steering.Commands())
}

func TestUpdate_FinalizesAfterJourneyEnded(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)
	_, _ = f.controller.Update(5.0)
	_, _ = f.controller.Update(4.0)

	// WHEN
	f.journey.Driving = false
	finalized, err := f.controller.Update(-4.5)

	// THEN
	assert.NoError(t, err)
	assert.True(t, finalized)
	assert.Equal(t, StateFinalized, f.controller.State())

	r := f.controller.Report()
	assert.Equal(t, 0.85, r.Kp)
	assert.Equal(t, 5.0, r.InitialYaw)
	assert.Equal(t, -5.0, r.SetPoint)
	assert.Equal(t, -4.5, r.FinalYaw)
	assert.Len(t, r.Samples, 3)

	// WHEN
	finalized, err = f.controller.Update(0)

	// THEN
	assert.NoError(t, err)
	assert.False(t, finalized)
	assert.Len(t, f.recorder.Samples(), 3)
	assert.Equal(t, -4.5, f.controller.Report().FinalYaw)
}

func TestUpdate_PrimingDoesNotFinalize(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)

	// WHEN
	finalized, _ := f.controller.Update(5.0)
	f.journey.Driving = false

	// THEN
	assert.False(t, finalized)
	assert.Equal(t, StateTracking, f.controller.State())
}

func TestUpdate_DecimatedMeasurementDoesNotFinalize(t *testing.T) {
	// GIVEN
	params := defaultParams
	params.DecimationFactor = 2
	f := createController(t, params)
	_, _ = f.controller.Update(5.0)
	f.journey.Driving = false

	// WHEN
	finalized, _ := f.controller.Update(1.0)

	// THEN
	assert.False(t, finalized)

	// WHEN
	finalized, _ = f.controller.Update(2.0)

	// THEN
	assert.True(t, finalized)
	assert.Equal(t, 2.0, f.controller.Report().FinalYaw)
}

func TestUpdate_SteeringTransportError(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)
	f.steering.SetErr(bus.ErrUnavailable)

	// WHEN
	_, err := f.controller.Update(5.0)

	// THEN
	assert.True(t, errors.Is(err, bus.ErrUnavailable))
	assert.Equal(t, 0, f.journey.Started)
	assert.Equal(t, StateAwaitingFirstSample, f.controller.State())
	assert.Equal(t, StateAwaitingFirstSample.String(), f.controller.Status().State)
}

func TestUpdate_JourneyStartError(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)
	f.journey.StartErr = bus.ErrUnavailable

	// WHEN
	_, err := f.controller.Update(5.0)

	// THEN
	assert.True(t, errors.Is(err, bus.ErrUnavailable))
	assert.Empty(t, f.recorder.Samples())
	assert.Equal(t, StateAwaitingFirstSample, f.controller.State())
	assert.False(t, f.controller.FinalizeStale())
}

func TestUpdate_SaturatedSteering(t *testing.T) {
	// GIVEN
	params := defaultParams
	params.Kp = 100
	f := createController(t, params)

	// WHEN
	_, _ = f.controller.Update(5.0)

	// THEN
	// output -1000 saturates at the calibrated minimum
	assert.Equal(t, []int{-5, -90}, f.steering.Commands())
	assert.Equal(t, -1000.0, f.recorder.Samples()[0].HeadingCommand)
}

func TestFinalizeStale(t *testing.T) {
	// GIVEN
	f := createController(t, defaultParams)

	// THEN
	assert.False(t, f.controller.FinalizeStale())

	// WHEN
	_, _ = f.controller.Update(5.0)
	_, _ = f.controller.Update(3.0)

	// THEN
	assert.True(t, f.controller.FinalizeStale())
	assert.Equal(t, StateFinalized, f.controller.State())
	assert.Equal(t, 3.0, f.controller.Report().FinalYaw)
	assert.False(t, f.controller.FinalizeStale())
}

func TestStatus_RmsError(t *testing.T) {
	// GIVEN
	params := defaultParams
	params.ErrorWindowSize = 2
	f := createController(t, params)

	// WHEN
	// errors: -10, -2, -5
	_, _ = f.controller.Update(5.0)
	_, _ = f.controller.Update(-3.0)
	_, _ = f.controller.Update(0.0)

	// THEN
	status := f.controller.Status()
	assert.Equal(t, StateTracking.String(), status.State)
	assert.True(t, status.Driving)
	assert.Equal(t, 25.0, status.LastSquaredError)
	assert.InDelta(t, 3.8079, status.RmsError, 1e-4)
}
