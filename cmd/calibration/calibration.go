package calibration

import (
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/configuration"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "calibration",
	Short:            "Steering calibration related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getCalibrator() *calibration.Calibrator {
	configPath := configuration.DetectAndReadConfigFile()
	if configPath != "" {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()

	calibrator, err := calibration.NewCalibrator(configuration.CurrentConfig.Steering.Calibration.Table())
	if err != nil {
		ui.Fatal("Invalid steering calibration: %v", err)
	}
	return calibrator
}
