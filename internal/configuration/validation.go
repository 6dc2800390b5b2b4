package configuration

import (
	"errors"
	"fmt"

	"github.com/markusressel/yaw2go/internal/ui"
	"golang.org/x/exp/slices"
)

// Validate checks the CurrentConfig, any error returned is fatal
// and the control loop must not be started.
func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateController(config)
	if err != nil {
		return err
	}
	err = validatePropulsion(config)
	if err != nil {
		return err
	}
	err = validateSteering(config)
	if err != nil {
		return err
	}
	err = validateTopics(config)
	if err != nil {
		return err
	}
	err = validateBus(config)
	if err != nil {
		return err
	}
	err = validatePort("Statistics", config.Statistics.Enabled, config.Statistics.Port)
	if err != nil {
		return err
	}
	err = validatePort("Api", config.Api.Enabled, config.Api.Port)
	if err != nil {
		return err
	}
	return validateReport(config)
}

func validateController(config *Configuration) error {
	c := config.Controller
	if c.DecimationFactor < 1 {
		return errors.New(fmt.Sprintf("Controller: decimationFactor must be >= 1, got %d", c.DecimationFactor))
	}
	if c.QueueSize < 1 {
		return errors.New(fmt.Sprintf("Controller: queueSize must be >= 1, got %d", c.QueueSize))
	}
	if c.ErrorWindowSize < 1 {
		return errors.New(fmt.Sprintf("Controller: errorWindowSize must be >= 1, got %d", c.ErrorWindowSize))
	}
	if c.StaleMeasurementTimeout < 0 {
		return errors.New(fmt.Sprintf("Controller: staleMeasurementTimeout must not be negative, got %s", c.StaleMeasurementTimeout))
	}
	if c.Kp == 0 {
		ui.Warning("Controller: kp is 0, the steering command will never change")
	}
	return nil
}

func validatePropulsion(config *Configuration) error {
	p := config.Propulsion
	if p.Duration <= 0 {
		return errors.New(fmt.Sprintf("Propulsion: duration must be > 0, got %s", p.Duration))
	}
	if p.Speed == 0 {
		ui.Warning("Propulsion: speed is 0, the vehicle will not move")
	}
	return nil
}

func validateSteering(config *Configuration) error {
	c := config.Steering.Calibration
	if err := c.Table().Validate(); err != nil {
		return errors.New(fmt.Sprintf("Steering: invalid calibration: %v", err))
	}
	if !slices.IsSorted(c.CommandLevels) {
		ui.Warning("Steering: calibration commandLevels are not increasing, the steering command will not be monotonic")
	}
	return nil
}

func validateTopics(config *Configuration) error {
	topics := map[string]string{
		"controller.measurementTopic": config.Controller.MeasurementTopic,
		"propulsion.topic":            config.Propulsion.Topic,
		"steering.topic":              config.Steering.Topic,
	}
	keys := []string{"controller.measurementTopic", "propulsion.topic", "steering.topic"}

	seen := map[string]string{}
	for _, key := range keys {
		topic := topics[key]
		if len(topic) <= 0 {
			return errors.New(fmt.Sprintf("Topics: %s is missing", key))
		}
		if other, exists := seen[topic]; exists {
			return errors.New(fmt.Sprintf("Topics: %s and %s use the same topic '%s'", other, key, topic))
		}
		seen[topic] = key
	}
	return nil
}

func validateBus(config *Configuration) error {
	b := config.Bus
	if len(b.Broker) <= 0 {
		return errors.New("Bus: broker is missing")
	}
	if b.Qos > 2 {
		return errors.New(fmt.Sprintf("Bus: qos must be one of 0 | 1 | 2, got %d", b.Qos))
	}
	if b.Timeout <= 0 {
		return errors.New(fmt.Sprintf("Bus: timeout must be > 0, got %s", b.Timeout))
	}
	return nil
}

func validatePort(section string, enabled bool, port int) error {
	if !enabled {
		return nil
	}
	if port <= 0 || port >= 65535 {
		return errors.New(fmt.Sprintf("%s: invalid port %d", section, port))
	}
	return nil
}

func validateReport(config *Configuration) error {
	format := config.Report.Format
	supportedFormats := []string{ReportFormatJson, ReportFormatYaml}
	if !slices.Contains(supportedFormats, format) {
		return errors.New(fmt.Sprintf("Report: unsupported format '%s', use one of: %s | %s", format, ReportFormatJson, ReportFormatYaml))
	}
	return nil
}
