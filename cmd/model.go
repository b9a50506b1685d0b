package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zoneminder-cli/internal/collect"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the server topology",
	Long: `Discovers the ZoneMinder daemon with its version and configuration options,
the monitors and the storage volumes of each target.`,
	Run: func(cmd *cobra.Command, args []string) {
		results := collectAll(cmd.Context(), collect.Model)

		if jsonOutput {
			printJSON(os.Stdout, results)
		} else {
			printTopology(os.Stdout, results)
		}
		exitOnFailure(results)
	},
}

// printTopology lists every modeled object. Daemon options are left to
// --json since there are hundreds of them.
func printTopology(w io.Writer, results []collect.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tRELATIONSHIP\tID\tTITLE\tATTRIBUTES")
	fmt.Fprintln(tw, "------\t------------\t--\t-----\t----------")

	for _, res := range results {
		for _, rm := range res.Topology {
			for _, om := range rm.Objects {
				var attrs []string
				for k, v := range om.Attributes {
					if rm.RelName == collect.RelDaemon && strings.HasPrefix(k, "Zm") {
						continue
					}
					attrs = append(attrs, fmt.Sprintf("%s=%v", k, v))
				}
				sort.Strings(attrs)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					res.Target,
					rm.RelName,
					om.ID,
					om.Title,
					strings.Join(attrs, " "),
				)
			}
		}
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(modelCmd)
}
