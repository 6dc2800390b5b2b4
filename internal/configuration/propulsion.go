package configuration

import "time"

type PropulsionConfig struct {
	Topic string `json:"topic"`
	// Signed motor command for the journey, the sign selects the direction
	Speed    int           `json:"speed"`
	Duration time.Duration `json:"duration"`
}
