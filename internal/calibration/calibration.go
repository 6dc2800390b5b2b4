package calibration

import (
	"errors"
	"fmt"
	"math"

	"github.com/markusressel/yaw2go/internal/util"
)

var (
	DefaultKnownAngles = []float64{
		-23.4823835367, -16.2088298025, -4.10722402982,
		6.64525217941, 16.4196652944, 27.7491348616, 30.8972609386,
	}
	DefaultCommandLevels = []int{0, 30, 60, 90, 120, 150, 179}
)

// Table is an empirically measured mapping from physical steering angles (degrees)
// to the actuator command levels that produce them.
type Table struct {
	KnownAngles   []float64 `json:"knownAngles" yaml:"knownAngles"`
	CommandLevels []int     `json:"commandLevels" yaml:"commandLevels"`
}

// Validate checks that the table can be used for interpolation
func (t Table) Validate() error {
	if len(t.KnownAngles) != len(t.CommandLevels) {
		return fmt.Errorf("knownAngles and commandLevels must have the same length, got %d and %d", len(t.KnownAngles), len(t.CommandLevels))
	}
	if len(t.KnownAngles) < 2 {
		return errors.New("at least two calibration points are required")
	}
	for i := 1; i < len(t.KnownAngles); i++ {
		if !(t.KnownAngles[i] > t.KnownAngles[i-1]) {
			return fmt.Errorf("knownAngles must be strictly increasing, but %v follows %v", t.KnownAngles[i], t.KnownAngles[i-1])
		}
	}
	return nil
}

// Calibrator maps logical steering angles to actuator commands
type Calibrator struct {
	angles []float64
	levels []float64
}

// NewCalibrator creates a Calibrator for the given table.
// The table is copied, later changes to it have no effect.
func NewCalibrator(table Table) (*Calibrator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	angles := make([]float64, len(table.KnownAngles))
	copy(angles, table.KnownAngles)
	levels := make([]float64, len(table.CommandLevels))
	for i, level := range table.CommandLevels {
		levels[i] = float64(level)
	}

	return &Calibrator{
		angles: angles,
		levels: levels,
	}, nil
}

// Map returns the actuator command for the given angle in degrees.
// Angles outside of the calibrated range saturate at the range limits,
// the interpolated level is rounded half to even.
func (c *Calibrator) Map(degrees float64) int {
	minAngle, maxAngle := c.Range()
	degrees = util.Coerce(degrees, minAngle, maxAngle)

	interpolated := util.InterpolateLinear(c.angles, c.levels, degrees)
	return int(math.RoundToEven(interpolated))
}

// Inverse returns the angle in degrees that is expected for the given actuator command.
// Only meaningful if the command levels are strictly increasing.
func (c *Calibrator) Inverse(level int) float64 {
	return util.InterpolateLinear(c.levels, c.angles, float64(level))
}

// Range returns the smallest and largest calibrated angle
func (c *Calibrator) Range() (min float64, max float64) {
	return c.angles[0], c.angles[len(c.angles)-1]
}

// Table returns a copy of the calibration table
func (c *Calibrator) Table() Table {
	table := Table{
		KnownAngles:   make([]float64, len(c.angles)),
		CommandLevels: make([]int, len(c.levels)),
	}
	copy(table.KnownAngles, c.angles)
	for i, level := range c.levels {
		table.CommandLevels[i] = int(level)
	}
	return table
}
