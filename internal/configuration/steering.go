package configuration

import "github.com/markusressel/yaw2go/internal/calibration"

type SteeringConfig struct {
	Topic       string            `json:"topic"`
	Calibration CalibrationConfig `json:"calibration"`
}

type CalibrationConfig struct {
	KnownAngles   []float64 `json:"knownAngles"`
	CommandLevels []int     `json:"commandLevels"`
}

func (c CalibrationConfig) Table() calibration.Table {
	return calibration.Table{
		KnownAngles:   c.KnownAngles,
		CommandLevels: c.CommandLevels,
	}
}
