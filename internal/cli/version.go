package cli

import (
	"fmt"
	"time"

	"github.com/hackhub-labs/hackadmin/internal/branding"
	"github.com/hackhub-labs/hackadmin/internal/config"
	"github.com/hackhub-labs/hackadmin/internal/versioncheck"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			return printJSON(out, info)
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)

		if !versionCheck {
			return nil
		}

		checker := versioncheck.New(buildVersion)
		cache, err := checker.Refresh(cmd.Context(), config.Dir())
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		available, err := versioncheck.IsUpdateAvailable(buildVersion, cache.LatestVersion)
		if err != nil {
			fmt.Fprintf(out, "Latest release: %s\n", cache.LatestVersion)
			return nil
		}
		if available {
			versioncheck.PrintBanner(out, buildVersion, cache.LatestVersion)
			return nil
		}
		fmt.Fprintf(out, "Up to date (checked %s).\n", cache.CheckedAt.Local().Format(time.RFC822))
		return nil
	},
}
