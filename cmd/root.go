package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/wifi-study/wifi-study/sim"
	_ "github.com/wifi-study/wifi-study/sim/wireless" // registers the bundled backend
)

var (
	// CLI flags for the experiment sweep
	csvPath   string    // Output CSV filepath
	verbose   bool      // One summary line per scenario + engine event logging
	logLevel  string    // Log verbosity level
	distances []float64 // AP-to-station distances to evaluate (meters)
	stations  uint      // Number of client stations per scenario
	appStart  float64   // Application start time (seconds)
	appStop   float64   // Application stop time (seconds)
	simStop   float64   // Simulation stop time (seconds)
	stagger   float64   // Per-station sender start offset (seconds)
	onFailure string    // Scenario failure policy (skip, abort)

	// CLI flags for scenario presets
	preset        string // Named preset from the scenarios file
	scenariosPath string // Path to the scenario presets YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "wifi-study",
	Short: "Distance-sweep throughput study for a single-AP wireless network",
}

// runCmd executes the distance sweep using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the distance sweep and append results to the CSV table",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		if verbose && level < logrus.InfoLevel {
			level = logrus.InfoLevel
		}
		logrus.SetLevel(level)

		cfg := sim.NewExperimentConfig()
		cfg.CSVPath = csvPath
		cfg.Verbose = verbose
		cfg.DistancesM = distances
		cfg.StationCount = stations
		cfg.AppStartS = appStart
		cfg.AppStopS = appStop
		cfg.SimStopS = simStop
		cfg.StaggerS = stagger

		policy, err := sim.ParseFailurePolicy(onFailure)
		if err != nil {
			logrus.Fatalf("Invalid --on-failure value: %v", err)
		}
		cfg.OnFailure = policy

		if preset != "" {
			if err := ApplyScenarioPreset(&cfg, scenariosPath, preset); err != nil {
				logrus.Fatalf("Could not apply scenario preset %q: %v", preset, err)
			}
		}

		runner, err := sim.NewExperimentRunner(cfg, nil)
		if err != nil {
			logrus.Fatalf("Invalid experiment configuration: %v", err)
		}
		if err := runner.Run(); err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		logrus.Info("Experiment complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&csvPath, "csv", "results.csv", "Output CSV filepath (appended to if it exists)")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "One summary line per scenario plus engine event logging")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Scenario shape
	runCmd.Flags().Float64SliceVar(&distances, "distances", sim.DefaultDistancesM, "Comma-separated AP-to-station distances in meters")
	runCmd.Flags().UintVar(&stations, "stations", sim.DefaultStationCount, "Number of client stations")
	runCmd.Flags().Float64Var(&appStart, "app-start", sim.DefaultAppStartS, "Application start time in seconds")
	runCmd.Flags().Float64Var(&appStop, "app-stop", sim.DefaultAppStopS, "Application stop time in seconds")
	runCmd.Flags().Float64Var(&simStop, "sim-stop", sim.DefaultSimStopS, "Simulation stop time in seconds")
	runCmd.Flags().Float64Var(&stagger, "stagger", sim.DefaultStaggerS, "Per-station sender start offset in seconds")
	runCmd.Flags().StringVar(&onFailure, "on-failure", string(sim.FailureSkip), "Scenario failure policy (skip, abort)")

	// Scenario presets
	runCmd.Flags().StringVar(&preset, "preset", "", "Named scenario preset overriding the sweep shape")
	runCmd.Flags().StringVar(&scenariosPath, "scenarios", "configs/scenarios.yaml", "Path to the scenario presets YAML")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
