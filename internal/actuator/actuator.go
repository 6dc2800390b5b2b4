package actuator

import (
	"github.com/markusressel/yaw2go/internal/bus"
)

// Actuator accepts integer commands, e.g. a steering servo level
// or a signed motor speed.
type Actuator interface {
	Command(value int) error
}

type busActuator struct {
	bus   bus.Bus
	topic string
}

// New returns an Actuator that publishes every command on the given topic
func New(b bus.Bus, topic string) Actuator {
	return &busActuator{
		bus:   b,
		topic: topic,
	}
}

func (a *busActuator) Command(value int) error {
	return a.bus.Publish(a.topic, value)
}
