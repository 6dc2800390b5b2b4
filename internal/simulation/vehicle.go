package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/yaw2go/internal/bus"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/ui"
)

// DefaultGain makes the default reverse journey (negative speed)
// turn towards the steering angle.
const DefaultGain = -0.002

type Topics struct {
	Yaw        string
	Steering   string
	Propulsion string
}

type Parameters struct {
	InitialYaw float64
	// yaw rate in degrees per second = Gain * speed * steering angle
	Gain float64
	// interval between published yaw measurements
	Rate time.Duration
}

// Vehicle is a kinematic stand-in for the model car. It listens to the steering and
// propulsion commands on the bus and publishes its integrated yaw.
type Vehicle struct {
	bus        bus.Bus
	topics     Topics
	params     Parameters
	calibrator *calibration.Calibrator

	mu            sync.Mutex
	yaw           float64
	steeringAngle float64
	speed         int
}

func NewVehicle(b bus.Bus, topics Topics, calibrator *calibration.Calibrator, params Parameters) (*Vehicle, error) {
	if params.Rate <= 0 {
		return nil, fmt.Errorf("rate must be > 0, got %s", params.Rate)
	}

	v := &Vehicle{
		bus:        b,
		topics:     topics,
		params:     params,
		calibrator: calibrator,
		yaw:        params.InitialYaw,
	}

	err := b.Subscribe(topics.Steering, func(payload []byte) {
		command, err := decodeCommand(payload)
		if err != nil {
			ui.Warning("Simulation: %v", err)
			return
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		v.steeringAngle = calibrator.Inverse(command)
	})
	if err != nil {
		return nil, err
	}

	err = b.Subscribe(topics.Propulsion, func(payload []byte) {
		command, err := decodeCommand(payload)
		if err != nil {
			ui.Warning("Simulation: %v", err)
			return
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		v.speed = command
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Run publishes the current yaw every Rate until ctx is done
func (v *Vehicle) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.params.Rate)
	defer ticker.Stop()

	for {
		err := v.bus.Publish(v.topics.Yaw, v.Yaw())
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v.Step(v.params.Rate)
		}
	}
}

// Step integrates the yaw over dt and returns the new yaw
func (v *Vehicle) Step(dt time.Duration) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	yawRate := v.params.Gain * float64(v.speed) * v.steeringAngle
	v.yaw += yawRate * dt.Seconds()
	return v.yaw
}

func (v *Vehicle) Yaw() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.yaw
}

func (v *Vehicle) SteeringAngle() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.steeringAngle
}

func (v *Vehicle) Speed() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speed
}

func decodeCommand(payload []byte) (int, error) {
	var command int
	if err := json.Unmarshal(payload, &command); err != nil {
		return 0, fmt.Errorf("invalid command payload '%s': %w", string(payload), err)
	}
	return command, nil
}
