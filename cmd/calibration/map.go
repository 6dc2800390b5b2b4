package calibration

import (
	"fmt"
	"strconv"

	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map <degrees>",
	Short: "Print the steering command for the given angle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		degrees, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid angle", args[0])
		}

		calibrator := getCalibrator()
		minAngle, maxAngle := calibrator.Range()
		if degrees < minAngle || degrees > maxAngle {
			ui.Warning("%.2f° is outside of the calibrated range [%.2f°, %.2f°], the command saturates", degrees, minAngle, maxAngle)
		}

		ui.Printfln("%d", calibrator.Map(degrees))
		return nil
	},
}

func init() {
	Command.AddCommand(mapCmd)
}
