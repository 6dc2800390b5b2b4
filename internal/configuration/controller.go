package configuration

import "time"

type ControllerConfig struct {
	// Proportional gain
	Kp float64 `json:"kp"`
	// The set-point is the first accepted yaw measurement minus this offset (degrees)
	SetPointOffset float64 `json:"setPointOffset"`
	// Only every n-th raw measurement is processed
	DecimationFactor int    `json:"decimationFactor"`
	MeasurementTopic string `json:"measurementTopic"`
	// Number of raw measurements buffered between the bus and the control loop
	QueueSize int `json:"queueSize"`
	// Finalizes the run if no measurement arrives within this duration
	// after the journey has ended. 0 disables the watchdog.
	StaleMeasurementTimeout time.Duration `json:"staleMeasurementTimeout"`
	// Number of processed samples used for the rolling RMS error statistic
	ErrorWindowSize int `json:"errorWindowSize"`
}
