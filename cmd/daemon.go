package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"zoneminder-cli/internal/collect"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Show daemon metrics",
	Long: `Collects the server-wide figures: daemon check, run state, load averages,
event count of the last five minutes, capture bandwidth, shared memory and
database connection usage.`,
	Run: func(cmd *cobra.Command, args []string) {
		results := collectAll(cmd.Context(), collect.Daemon)

		if jsonOutput {
			printJSON(os.Stdout, results)
		} else {
			printMetrics(os.Stdout, results, collect.KindDaemon, collect.DatasourceDaemon, "COMPONENT", formatNumber)
		}
		exitOnFailure(results)
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
