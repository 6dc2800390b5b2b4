package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

const (
	plotHeight = 15
	plotWidth  = 100
)

// Render formats the report as a summary table followed by
// a plot of the squared yaw error and a plot of the heading command.
func Render(r Report, color bool) (string, error) {
	var buf bytes.Buffer

	tab := table.Table{
		Headers: []string{"Kp", "Initial Yaw", "Desired Yaw", "Final Yaw", "Samples", "Duration", "RMS Error"},
		Rows: [][]string{
			{
				fmt.Sprintf("%.2f", r.Kp),
				fmt.Sprintf("%.2f°", r.InitialYaw),
				fmt.Sprintf("%.2f°", r.SetPoint),
				fmt.Sprintf("%.2f°", r.FinalYaw),
				fmt.Sprintf("%d", len(r.Samples)),
				fmt.Sprintf("%.1fs", r.Duration()),
				fmt.Sprintf("%.2f°", r.RmsError()),
			},
		},
	}
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}

	if len(r.Samples) == 0 {
		return buf.String(), nil
	}

	buf.WriteString("\n\n")
	buf.WriteString(asciigraph.Plot(
		r.SquaredErrors(),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("Squared yaw difference for Kp=%v over %.1fs", r.Kp, r.Duration())),
	))
	buf.WriteString("\n\n")
	buf.WriteString(asciigraph.Plot(
		r.HeadingCommands(),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("Heading angle in degrees over %.1fs", r.Duration())),
	))
	buf.WriteString("\n")

	return strings.TrimRight(buf.String(), " "), nil
}
