package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/cli/browser"
	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/branding"
	"github.com/hackhub-labs/hackadmin/internal/notify"
	"github.com/hackhub-labs/hackadmin/internal/repolink"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reposTeam        string
	reposProject     string
	reposURLs        []string
	reposInteractive bool
	reposNoBrowser   bool
	reposVerify      bool
	reposJSON        bool
)

// openBrowser is swapped out in tests.
var openBrowser = browser.OpenURL

func init() {
	reposListCmd.Flags().StringVar(&reposTeam, "team", "", "Team id")
	reposListCmd.Flags().BoolVar(&reposJSON, "json", false, "Output in JSON format")
	_ = reposListCmd.MarkFlagRequired("team")

	reposLinkCmd.Flags().StringVar(&reposTeam, "team", "", "Team id")
	reposLinkCmd.Flags().StringArrayVar(&reposURLs, "url", nil, "Repository URL (repeatable)")
	reposLinkCmd.Flags().BoolVarP(&reposInteractive, "interactive", "i", false, "Edit the link list interactively")
	reposLinkCmd.Flags().BoolVar(&reposNoBrowser, "no-browser", false, "Print the authorization URL instead of opening it")
	reposLinkCmd.Flags().BoolVar(&reposVerify, "verify", false, "Check every link against the GitHub API first")
	_ = reposLinkCmd.MarkFlagRequired("team")

	reposDeleteCmd.Flags().StringVar(&reposTeam, "team", "", "Team id")
	reposDeleteCmd.Flags().StringVar(&reposProject, "project", "", "Project id the repository belongs to")
	_ = reposDeleteCmd.MarkFlagRequired("team")
	_ = reposDeleteCmd.MarkFlagRequired("project")

	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposLinkCmd)
	reposCmd.AddCommand(reposCallbackCmd)
	reposCmd.AddCommand(reposDeleteCmd)
	rootCmd.AddCommand(reposCmd)
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage GitHub repositories linked to team projects",
}

var reposListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the repositories linked to a team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		if err := a.settings.RequireHackathon(false); err != nil {
			return err
		}

		m := repolink.NewManager(a.client, reposTeam, "", a.notifier)
		if err := m.Load(cmd.Context()); err != nil {
			return notified(err)
		}
		if reposJSON {
			return printJSON(cmd.OutOrStdout(), m.Repos())
		}
		return printRepos(cmd, m.Repos())
	},
}

var reposLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link GitHub repositories to a team through the OAuth connector",
	Long: `Collect repository URLs and open the backend's GitHub authorization page.

URLs come from --url flags; with --interactive (or when none are given) an
editor prompt lets you add, change and remove entries before submitting.
After GitHub redirects back, pass the final URL to "repos callback" to see
the outcome.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := repolink.NewEntries(reposURLs...)
		if reposInteractive || len(reposURLs) == 0 {
			if err := repolink.RunEditor(entries, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
		}

		links, err := entries.Submittable()
		if err != nil {
			return err
		}

		a := newApp(cmd)
		if a.settings.Token == "" {
			return errors.New("no API token configured (set one with `config set token <value>`)")
		}

		if reposVerify {
			if err := verifyLinks(cmd, a, links); err != nil {
				return err
			}
		}

		authURL, err := repolink.AuthorizeURL(a.settings.BackendURL, reposTeam, a.settings.Token, links)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reposNoBrowser {
			fmt.Fprintln(out, authURL)
			return nil
		}
		if err := openBrowser(authURL); err != nil {
			a.log.Debug("opening browser failed", zap.Error(err))
			fmt.Fprintf(out, "Open this URL to authorize GitHub:\n  %s\n", authURL)
			return nil
		}
		fmt.Fprintf(out, "Opened GitHub authorization for %d repositories.\n", len(links))
		fmt.Fprintf(out, "When redirected back, run: %s repos callback '<url>'\n", branding.CLIName())
		return nil
	},
}

// verifyLinks reports each link's GitHub status and fails if any repository
// could not be confirmed.
func verifyLinks(cmd *cobra.Command, a *app, links []string) error {
	v := repolink.NewVerifier(cmd.Context(), a.settings.GitHubToken)
	failed := 0
	for _, c := range v.Verify(cmd.Context(), links) {
		switch c.Status {
		case repolink.StatusFound:
			visibility := "public"
			if c.Private {
				visibility = "private"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "  found      %s (%s)\n", c.FullName, visibility)
		case repolink.StatusSkipped:
			fmt.Fprintf(cmd.ErrOrStderr(), "  skipped    %s (not a GitHub repository)\n", c.URL)
		case repolink.StatusNotFound:
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "  not found  %s\n", c.URL)
		default:
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "  error      %s: %v\n", c.URL, c.Err)
		}
	}
	if failed > 0 {
		a.notifier.Notify(notify.Error(fmt.Sprintf("%d repository link(s) could not be verified", failed)))
		return notified(repolink.ErrNotSubmittable)
	}
	return nil
}

var reposCallbackCmd = &cobra.Command{
	Use:   "callback <return-url>",
	Short: "Report the outcome of a GitHub authorization redirect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ret, ok, err := repolink.ParseReturn(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("URL carries no authorization outcome")
		}

		n := notify.NewWriterNotifier(cmd.ErrOrStderr(), nil)
		n.Notify(ret.Notice())

		clean, err := repolink.StripReturn(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), clean)
		if !ret.Succeeded() {
			return notified(errors.New(ret.Notice().Message))
		}
		return nil
	},
}

var reposDeleteCmd = &cobra.Command{
	Use:   "delete <repo-id>",
	Short: "Unlink a repository from a team's project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		if err := a.settings.RequireHackathon(false); err != nil {
			return err
		}

		m := repolink.NewManager(a.client, reposTeam, reposProject, a.notifier)
		if err := m.Load(cmd.Context()); err != nil {
			return notified(err)
		}
		if err := m.Delete(cmd.Context(), args[0]); err != nil {
			return notified(err)
		}
		return printRepos(cmd, m.Repos())
	},
}

func printRepos(cmd *cobra.Command, repos []api.GitHubRepo) error {
	out := cmd.OutOrStdout()
	if len(repos) == 0 {
		fmt.Fprintln(out, "No linked repositories.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURL")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, dash(r.Name), r.URL)
	}
	return tw.Flush()
}
