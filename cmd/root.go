package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/abm-sim/abm-sim/sim"
	"github.com/abm-sim/abm-sim/sim/output"
	"github.com/abm-sim/abm-sim/sim/trace"
)

var (
	// CLI flags for the parameter set
	paramsFile         string // YAML parameter file; defaults used when empty
	seed               int64  // Seed for every random stream of the run
	nTotal             int64  // Total number of people
	daysOfInteractions int    // Days of interactions retained
	endTime            int    // Last simulated day
	nSeedInfection     int    // Number of seed infections at day 0
	traceLevel         string // Infection trace level

	// CLI flags for outputs
	logLevel       string // Log verbosity level
	timeseriesFile string // CSV time series path
	resultsDB      string // SQLite results database path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "abm-sim",
	Short: "Agent-based simulator for infectious disease spread over daily contact networks",
}

// runCmd executes the simulation using parameters from the file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		params, err := resolveParameters(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation: n_total=%d, days_of_interactions=%d, end_time=%d, n_seed_infection=%d, seed=%d",
			params.NTotal, params.DaysOfInteractions, params.EndTime, params.NSeedInfection, params.RNGSeed)

		startTime := time.Now()
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(params.RNGSeed))
		model, err := sim.NewModel(params, rng)
		if err != nil {
			logrus.Fatalf("Failed to build model: %v", err)
		}
		defer model.Destroy()

		if err := model.Run(); err != nil {
			logrus.Fatalf("Simulation stopped: %v", err)
		}

		rows := output.Collect(model)
		if timeseriesFile != "" {
			if err := output.WriteCSVFile(timeseriesFile, rows); err != nil {
				logrus.Fatalf("Failed to write time series: %v", err)
			}
			logrus.Infof("Time series written to %s", timeseriesFile)
		}
		if resultsDB != "" {
			if err := saveResults(cmd.Context(), resultsDB, params, model, rows); err != nil {
				logrus.Fatalf("Failed to store results: %v", err)
			}
		}

		printSummary(os.Stdout, model, trace.Summarize(model.Trace()), time.Since(startTime))
		logrus.Info("Simulation complete.")
	},
}

// validateCmd checks a parameter file without running it
var validateCmd = &cobra.Command{
	Use:   "validate <params.yaml>",
	Short: "Validate a parameter file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := sim.LoadParameters(args[0])
		if err != nil {
			return err
		}
		if err := params.Validate(); err != nil {
			return err
		}
		cmd.Printf("%s: ok\n", args[0])
		return nil
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveParameters loads the parameter file (or the defaults) and applies
// only the flags the user explicitly set, so file values are not clobbered
// by flag defaults.
func resolveParameters(cmd *cobra.Command) (*sim.Parameters, error) {
	var params *sim.Parameters
	if paramsFile != "" {
		loaded, err := sim.LoadParameters(paramsFile)
		if err != nil {
			return nil, err
		}
		params = loaded
	} else {
		defaults := sim.DefaultParameters()
		params = &defaults
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		params.RNGSeed = seed
	}
	if flags.Changed("n-total") {
		params.NTotal = nTotal
	}
	if flags.Changed("days-of-interactions") {
		params.DaysOfInteractions = daysOfInteractions
	}
	if flags.Changed("end-time") {
		params.EndTime = endTime
	}
	if flags.Changed("n-seed-infection") {
		params.NSeedInfection = nSeedInfection
	}
	if flags.Changed("trace") {
		params.TraceLevel = traceLevel
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

func saveResults(ctx context.Context, path string, params *sim.Parameters, model *sim.Model, rows []output.Row) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := output.OpenResultStore(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	run := output.NewRunRecord(*params, model.TotalInfected())
	if err := store.SaveRun(ctx, run, rows); err != nil {
		return err
	}
	logrus.Infof("Results stored in %s as run %s", path, run.ID)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags of c to the package-level flag variables.
func registerRunFlags(c *cobra.Command) {
	defaults := sim.DefaultParameters()

	c.Flags().StringVar(&paramsFile, "params", "", "YAML parameter file (defaults used when omitted)")
	c.Flags().Int64Var(&seed, "seed", defaults.RNGSeed, "Seed for network shuffling and seed-infection draws")
	c.Flags().Int64Var(&nTotal, "n-total", defaults.NTotal, "Total number of people")
	c.Flags().IntVar(&daysOfInteractions, "days-of-interactions", defaults.DaysOfInteractions, "Days of interactions retained")
	c.Flags().IntVar(&endTime, "end-time", defaults.EndTime, "Last simulated day")
	c.Flags().IntVar(&nSeedInfection, "n-seed-infection", defaults.NSeedInfection, "Number of seed infections at day 0")
	c.Flags().StringVar(&traceLevel, "trace", "none", "Infection trace level (none, infections)")

	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&timeseriesFile, "timeseries", "", "Write the daily time series as CSV to this path")
	c.Flags().StringVar(&resultsDB, "results-db", "", "Store the run in this SQLite database")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
