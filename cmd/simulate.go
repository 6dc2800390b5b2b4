package cmd

import (
	"os"
	"time"

	"github.com/markusressel/yaw2go/internal"
	"github.com/markusressel/yaw2go/internal/simulation"
	"github.com/spf13/cobra"
)

var simulationParams = simulation.Parameters{}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Perform a run against a simulated vehicle",
	Long: `Runs the heading controller against a simple kinematic vehicle model
on an in-process message bus. No broker is required.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()

		if !loadAndValidateConfig() {
			os.Exit(1)
		}

		exit(internal.RunSimulation(simulationParams))
	},
}

func init() {
	simulateCmd.Flags().Float64VarP(&simulationParams.InitialYaw, "initial-yaw", "y", 0, "Heading of the vehicle at the start of the simulation in degrees")
	simulateCmd.Flags().Float64VarP(&simulationParams.Gain, "gain", "g", simulation.DefaultGain, "Yaw rate per speed unit and steering degree")
	simulateCmd.Flags().DurationVarP(&simulationParams.Rate, "rate", "r", 10*time.Millisecond, "Interval between yaw measurements")

	rootCmd.AddCommand(simulateCmd)
}
