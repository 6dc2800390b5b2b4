package bus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when a message cannot be handed to the transport
var ErrUnavailable = errors.New("message bus unavailable")

// Handler receives the raw payload of a message published on a subscribed topic
type Handler func(payload []byte)

// Bus is a generic publish/subscribe transport
type Bus interface {
	// Publish serializes the given value and publishes it on the topic
	Publish(topic string, value any) error
	// Subscribe registers a handler for all messages published on the topic
	Subscribe(topic string, handler Handler) error
	Close()
}

// DecodeYaw parses a yaw measurement payload. Both a bare number and
// a pose object like {"roll":0,"pitch":0,"yaw":12.5} are accepted.
func DecodeYaw(payload []byte) (float64, error) {
	var value float64
	if err := json.Unmarshal(payload, &value); err == nil {
		return value, nil
	}

	var pose struct {
		Yaw *float64 `json:"yaw"`
	}
	if err := json.Unmarshal(payload, &pose); err != nil {
		return 0, fmt.Errorf("invalid yaw payload '%s': %w", string(payload), err)
	}
	if pose.Yaw == nil {
		return 0, fmt.Errorf("invalid yaw payload '%s': missing yaw field", string(payload))
	}
	return *pose.Yaw, nil
}

func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}
