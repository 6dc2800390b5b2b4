package configuration

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Controller ControllerConfig `json:"controller"`
	Propulsion PropulsionConfig `json:"propulsion"`
	Steering   SteeringConfig   `json:"steering"`

	Bus        BusConfig        `json:"bus"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Report     ReportConfig     `json:"report"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("yaw2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/yaw2go/")
	}

	viper.SetEnvPrefix("yaw2go")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("controller.kp", 0.85)
	viper.SetDefault("controller.setPointOffset", 10.0)
	viper.SetDefault("controller.decimationFactor", 10)
	viper.SetDefault("controller.measurementTopic", "model_car/yaw")
	viper.SetDefault("controller.queueSize", 10)
	viper.SetDefault("controller.staleMeasurementTimeout", time.Duration(0))
	viper.SetDefault("controller.errorWindowSize", 10)

	viper.SetDefault("propulsion.topic", "manual_control/speed")
	viper.SetDefault("propulsion.speed", -180)
	viper.SetDefault("propulsion.duration", 14*time.Second)

	viper.SetDefault("steering.topic", "manual_control/steering")
	viper.SetDefault("steering.calibration.knownAngles", calibration.DefaultKnownAngles)
	viper.SetDefault("steering.calibration.commandLevels", calibration.DefaultCommandLevels)

	viper.SetDefault("bus.broker", "tcp://localhost:1883")
	viper.SetDefault("bus.clientId", "yaw2go")
	viper.SetDefault("bus.qos", 0)
	viper.SetDefault("bus.timeout", 5*time.Second)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("report.plot", true)
	viper.SetDefault("report.path", "")
	viper.SetDefault("report.format", ReportFormatJson)
}

// DetectAndReadConfigFile reads the config file and returns its path.
// Since all values have defaults, a missing config file is not an error
// unless it was explicitly requested.
func DetectAndReadConfigFile() string {
	err := viper.ReadInConfig()
	if err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			ui.Warning("No configuration file found, using default values")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the current viper state into CurrentConfig
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
