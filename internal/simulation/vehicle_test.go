package simulation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/markusressel/yaw2go/internal/bus"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var topics = Topics{
	Yaw:        "model_car/yaw",
	Steering:   "manual_control/steering",
	Propulsion: "manual_control/speed",
}

func createVehicle(t *testing.T, params Parameters) (*bus.MemoryBus, *Vehicle) {
	calibrator, err := calibration.NewCalibrator(calibration.Table{
		KnownAngles:   []float64{-90, 90},
		CommandLevels: []int{-90, 90},
	})
	require.NoError(t, err)

	b := bus.NewMemoryBus()
	v, err := NewVehicle(b, topics, calibrator, params)
	require.NoError(t, err)
	return b, v
}

func TestNewVehicle_InvalidRate(t *testing.T) {
	// GIVEN
	b := bus.NewMemoryBus()

	// WHEN
	v, err := NewVehicle(b, topics, nil, Parameters{})

	// THEN
	assert.Nil(t, v)
	assert.EqualError(t, err, "rate must be > 0, got 0s")
}

func TestVehicle_FollowsCommands(t *testing.T) {
	// GIVEN
	b, v := createVehicle(t, Parameters{InitialYaw: 10, Gain: -0.002, Rate: time.Second})

	// WHEN
	require.NoError(t, b.Publish(topics.Steering, 20))
	require.NoError(t, b.Publish(topics.Propulsion, -180))

	// THEN
	assert.InDelta(t, 20.0, v.SteeringAngle(), 1e-9)
	assert.Equal(t, -180, v.Speed())

	// WHEN
	yaw := v.Step(500 * time.Millisecond)

	// THEN
	// -0.002 * -180 * 20 * 0.5
	assert.InDelta(t, 13.6, yaw, 1e-9)
}

func TestVehicle_StandingStill(t *testing.T) {
	// GIVEN
	b, v := createVehicle(t, Parameters{InitialYaw: 10, Gain: -0.002, Rate: time.Second})

	// WHEN
	require.NoError(t, b.Publish(topics.Steering, 45))
	yaw := v.Step(10 * time.Second)

	// THEN
	assert.InDelta(t, 10.0, yaw, 1e-9)
}

func TestVehicle_IgnoresInvalidCommands(t *testing.T) {
	// GIVEN
	b, v := createVehicle(t, Parameters{Gain: -0.002, Rate: time.Second})

	// WHEN
	require.NoError(t, b.Publish(topics.Propulsion, "fast"))

	// THEN
	assert.Equal(t, 0, v.Speed())
}

func TestVehicle_RunPublishesYaw(t *testing.T) {
	// GIVEN
	b, v := createVehicle(t, Parameters{InitialYaw: 42, Gain: -0.002, Rate: 10 * time.Millisecond})

	var mu sync.Mutex
	var received []float64
	require.NoError(t, b.Subscribe(topics.Yaw, func(payload []byte) {
		yaw, err := bus.DecodeYaw(payload)
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		received = append(received, yaw)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// WHEN
	go func() {
		done <- v.Run(ctx)
	}()

	// THEN
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) >= 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 42.0, received[0])
}
