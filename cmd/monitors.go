package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"zoneminder-cli/internal/collect"
)

var monitorIDs string

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Show per-monitor metrics",
	Long: `Collects online state, capture status, capture daemon state, recent events
and frame rates of every monitor that is not ignored.`,
	Example: `  zoneminder-cli monitors
  zoneminder-cli monitors --ids "1,4" --json`,
	Run: func(cmd *cobra.Command, args []string) {
		ids := splitIDs(monitorIDs)

		var results []collect.Result
		for _, t := range loadTargets() {
			if len(ids) > 0 {
				t.Monitors = ids
			}
			results = append(results, collect.Run(cmd.Context(), t, logger, collect.Monitors))
		}

		if jsonOutput {
			printJSON(os.Stdout, results)
		} else {
			printMetrics(os.Stdout, results, collect.KindMonitor, collect.DatasourceMonitor, "MONITOR", formatNumber)
		}
		exitOnFailure(results)
	},
}

// splitIDs parses a comma separated ID list, skipping blanks.
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
	monitorsCmd.Flags().StringVar(&monitorIDs, "ids", "", "Comma separated list of monitor IDs (default: all)")
}
