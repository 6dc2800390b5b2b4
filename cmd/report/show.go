package report

import (
	"github.com/markusressel/yaw2go/cmd/global"
	"github.com/markusressel/yaw2go/internal/report"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the summary and plots of an exported run report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := report.Load(args[0])
		if err != nil {
			return err
		}

		text, err := report.Render(r, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln("%s", text)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
