package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/yaw2go/cmd/calibration"
	"github.com/markusressel/yaw2go/cmd/config"
	"github.com/markusressel/yaw2go/cmd/global"
	"github.com/markusressel/yaw2go/cmd/report"
	"github.com/markusressel/yaw2go/internal"
	"github.com/markusressel/yaw2go/internal/configuration"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yaw2go",
	Short: "Closed-loop heading controller for a model car.",
	Long: `yaw2go holds the heading of a model car during a single
timed journey, based on yaw measurements received over MQTT.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		if !loadAndValidateConfig() {
			os.Exit(1)
		}

		exit(internal.RunController())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/yaw2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(calibration.Command)
	rootCmd.AddCommand(report.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("yaw", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("yaw2go")
	}
}

// loadAndValidateConfig reads the configuration into configuration.CurrentConfig
// and reports the first validation error, if any
func loadAndValidateConfig() bool {
	configPath := configuration.DetectAndReadConfigFile()
	if configPath != "" {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	err := configuration.Validate()
	if err != nil {
		ui.Error("Config Validation Error: %v", err)
		return false
	}
	return true
}

// exit terminates the process with a status code that reflects err
func exit(err error) {
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
