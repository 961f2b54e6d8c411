package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

// envPrefix namespaces environment overrides, e.g. CALLCENTER_SEED=7.
const envPrefix = "CALLCENTER"

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "callcenter-sim",
	Short: "Discrete-event simulator for call center staffing studies",
}

// runV holds the run command's flags, environment and defaults.
var runV = viper.New()

// runCmd executes the staffing experiment using parameters from CLI flags,
// environment and an optional experiment file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the call center staffing experiment",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		logLevel := runV.GetString("log")
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(runV)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		logrus.Infof("Starting experiment: horizon=%.0fmin, arrival=%s, service=%s, agents=%v, replications=%d, seed=%d, streams=%s",
			cfg.Horizon, cfg.Arrival, cfg.Service, cfg.AgentCounts, cfg.Replications, cfg.Seed, cfg.StreamMode)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := runExperiment(ctx, cfg, outputsFrom(runV)); err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// outputs selects the artifacts written after the experiment.
type outputs struct {
	CSVPath     string // detailed records; "" disables
	PlotDir     string // chart directory; "" disables
	PlotFormat  string // png, svg or pdf
	MetricsPath string // Prometheus textfile; "" disables
}

func outputsFrom(v *viper.Viper) outputs {
	return outputs{
		CSVPath:     v.GetString("output"),
		PlotDir:     v.GetString("plot-dir"),
		PlotFormat:  v.GetString("plot-format"),
		MetricsPath: v.GetString("metrics-file"),
	}
}

// runExperiment runs cfg, prints the report to stdout and writes every
// requested artifact.
func runExperiment(ctx context.Context, cfg experiment.Config, out outputs) error {
	if out.PlotDir != "" {
		if err := validatePlotFormat(out.PlotFormat); err != nil {
			return err
		}
	}

	startTime := time.Now()
	h, err := experiment.NewHarness(cfg)
	if err != nil {
		return err
	}
	metrics := newExperimentMetrics()
	h.OnReplication = metrics.ObserveReplication

	records, err := h.Run(ctx)
	if err != nil {
		return err
	}
	summaries := experiment.SummarizeByConfiguration(records)
	baselines := h.Baselines()
	metrics.ObserveSummaries(summaries, time.Since(startTime))
	metrics.ObserveBaselines(baselines)

	printReport(os.Stdout, records, summaries, baselines)

	if out.CSVPath != "" {
		if err := writeRecordsCSV(out.CSVPath, records); err != nil {
			return err
		}
		logrus.Infof("Detailed results saved to %s", out.CSVPath)
	}
	if out.PlotDir != "" {
		files, err := savePlots(out.PlotDir, out.PlotFormat, summaries)
		if err != nil {
			return err
		}
		logrus.Infof("Saved %d charts to %s", len(files), out.PlotDir)
	}
	if out.MetricsPath != "" {
		if err := metrics.WriteTextfile(out.MetricsPath); err != nil {
			return err
		}
		logrus.Infof("Experiment metrics written to %s", out.MetricsPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags defines the run flags on fs. Defaults are the reference
// staffing study.
func registerRunFlags(fs *pflag.FlagSet) {
	def := experiment.DefaultConfig()

	fs.String("config", "", "Experiment YAML file; explicitly set flags override its values")
	fs.String("log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Experiment parameters
	fs.Int64("seed", def.Seed, "Seed for the random streams")
	fs.Float64("horizon", def.Horizon, "Simulated minutes per replication")
	fs.IntSlice("agents", def.AgentCounts, "Comma-separated agent counts to compare")
	fs.Int("replications", def.Replications, "Replications per agent count")
	fs.Float64("arrival-min", def.Arrival.Params["min"], "Minimum minutes between arrivals (uniform)")
	fs.Float64("arrival-max", def.Arrival.Params["max"], "Maximum minutes between arrivals (uniform)")
	fs.Float64("service-min", def.Service.Params["min"], "Minimum call duration in minutes (uniform)")
	fs.Float64("service-max", def.Service.Params["max"], "Maximum call duration in minutes (uniform)")
	fs.String("stream-mode", string(def.StreamMode), "Random stream layout: shared (one sequential stream) or partitioned (per-replication streams, parallel)")
	fs.Int("workers", 0, "Parallel replications in partitioned mode (0 = up to 8)")
	fs.String("trace-level", "none", "Pool tracing: none or pool")

	// Outputs
	fs.String("output", "call_center_detailed.csv", "CSV file for per-replication records (empty disables)")
	fs.String("plot-dir", "", "Directory for metric charts (empty disables)")
	fs.String("plot-format", "png", "Chart format: png, svg or pdf")
	fs.String("metrics-file", "", "Write experiment metrics in Prometheus text format to this file")
}

// bindRunConfig binds fs and CALLCENTER_* environment variables to v.
func bindRunConfig(v *viper.Viper, fs *pflag.FlagSet) {
	if err := v.BindPFlags(fs); err != nil {
		logrus.Fatalf("Failed to bind flags: %v", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd.Flags())
	bindRunConfig(runV, runCmd.Flags())

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
