package report

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "report",
	Short:            "Run report related commands",
	Long:             ``,
	TraverseChildren: true,
}
