package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/hackhub-labs/hackadmin/internal/branding"
	"github.com/hackhub-labs/hackadmin/internal/config"
	"github.com/hackhub-labs/hackadmin/internal/versioncheck"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose   bool
	flagOrg       string
	flagHackathon string
	flagAPIURL    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` is the organizer console for a hackathon: browse and filter teams,
follow rounds, publish announcements, end the hackathon, and manage the GitHub
repositories linked to team projects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip banners for commands that manage their own state.
		switch cmd.Name() {
		case "version", "config", "set", "get", "keys", "completion", "help":
			return
		}
		if os.Getenv(branding.EnvVar("NO_UPDATE_CHECK")) != "" {
			return
		}

		// Non-blocking banner from cached version check.
		versioncheck.New(buildVersion).PrintBannerFromCache(cmd.ErrOrStderr(), config.Dir())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log API requests to stderr")
	rootCmd.PersistentFlags().StringVar(&flagOrg, "org", "", "Organization id (overrides org_id)")
	rootCmd.PersistentFlags().StringVar(&flagHackathon, "hackathon", "", "Hackathon id (overrides hackathon_id)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides api_url)")
}

// Execute runs the root command with build info injected via ldflags.
// Errors already shown to the user as notices are not printed again.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errNotified) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}
