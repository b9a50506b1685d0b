package cmd

import (
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"zoneminder-cli/internal/collect"
)

var rawBytes bool

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show storage volume usage",
	Long: `Collects used and total space, space taken by events and the utilization
percentage of each storage area. From ZoneMinder 1.32 on the storage API is
merged with the figures of the web console.`,
	Run: func(cmd *cobra.Command, args []string) {
		results := collectAll(cmd.Context(), collect.Storage)

		if jsonOutput {
			printJSON(os.Stdout, results)
		} else {
			format := formatSize
			if rawBytes {
				format = formatNumber
			}
			printMetrics(os.Stdout, results, collect.KindStorage, collect.DatasourceStorage, "VOLUME", format)
		}
		exitOnFailure(results)
	},
}

func formatSize(id string, v float64) string {
	switch id {
	case "used", "total", "events":
		if v < 0 {
			return formatNumber(id, v)
		}
		return humanize.IBytes(uint64(v))
	case "percent":
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	return formatNumber(id, v)
}

func init() {
	rootCmd.AddCommand(storageCmd)
	storageCmd.Flags().BoolVar(&rawBytes, "bytes", false, "Print sizes in bytes")
}
