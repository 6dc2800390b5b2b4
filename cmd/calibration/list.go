package calibration

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/yaw2go/cmd/global"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const graphWidth = 100

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the steering calibration table and mapping to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		calibrator := getCalibrator()
		calibrationTable := calibrator.Table()

		// print table
		var rows [][]string
		for i, angle := range calibrationTable.KnownAngles {
			rows = append(rows, []string{
				fmt.Sprintf("%.4f°", angle),
				fmt.Sprintf("%d", calibrationTable.CommandLevels[i]),
			})
		}
		tab := table.Table{
			Headers: []string{"Angle", "Command"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       true,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln("%s", buf.String())

		minAngle, maxAngle := calibrator.Range()
		step := (maxAngle - minAngle) / float64(graphWidth-1)
		values := make([]float64, 0, graphWidth)
		for i := 0; i < graphWidth; i++ {
			values = append(values, float64(calibrator.Map(minAngle+float64(i)*step)))
		}

		caption := fmt.Sprintf("Command / Angle (%.1f° .. %.1f°)", minAngle, maxAngle)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(graphWidth), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
