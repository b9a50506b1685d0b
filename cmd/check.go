package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zoneminder-cli/internal/collect"
	"zoneminder-cli/internal/version"
	"zoneminder-cli/pkg/models"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every target accepts the configured login",
	Long: `Logs in to each configured ZoneMinder server, reads its version and logs
out again. Nothing else is collected.

Example:
  zoneminder-cli check --target nvr1`,
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, t := range loadTargets() {
			fmt.Printf("Authenticating against %s as user '%s'...\n", t.Name, t.Username)

			var v models.VersionResponse
			res := collect.Run(cmd.Context(), t, logger, func(ctx context.Context, c *collect.Cycle) error {
				var err error
				v, err = c.Version(ctx)
				return err
			})
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", res.Target, res.Err)
				failed = true
				continue
			}

			info := version.Dissect(v.Version, v.APIVersion)
			fmt.Printf("  OK: %s runs ZoneMinder %s (API %s)\n", res.BaseURL, info.Daemon, info.API)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
