package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zoneminder-cli/internal/collect"
	"zoneminder-cli/internal/config"
)

var (
	cfgFile    string
	jsonOutput bool
	targetName string
	verbose    bool
)

var logger = slog.Default()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zoneminder-cli",
	Short: "Collect status and performance data from ZoneMinder servers",
	Long: `Logs in to one or more ZoneMinder video surveillance servers, reads the
JSON API and the web console, and prints daemon, monitor and storage
metrics or the server topology. The exporter command serves the same
metrics to Prometheus.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
		slog.SetDefault(logger)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.zoneminder-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVarP(&targetName, "target", "t", "", "Only use the target with this name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadTargets returns the configured targets narrowed by --target.
func loadTargets() []config.Target {
	targets, err := config.Targets(viper.GetViper())
	if err != nil {
		fmt.Printf("Error reading targets: %v\n", err)
		os.Exit(1)
	}
	targets, err = config.Select(targets, targetName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Println("Error: No targets configured. Set 'targets' in the config file or ZM_HOSTNAME / ZM_URL.")
		os.Exit(1)
	}
	return targets
}

// collectAll runs one cycle per target, one after the other.
func collectAll(ctx context.Context, steps ...collect.Step) []collect.Result {
	var results []collect.Result
	for _, t := range loadTargets() {
		results = append(results, collect.Run(ctx, t, logger, steps...))
	}
	return results
}

// exitOnFailure reports failed targets on stderr and exits non-zero if
// any failed.
func exitOnFailure(results []collect.Result) {
	failed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Error collecting from %s: %v\n", res.Target, res.Err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
