package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/teamlist"
	"github.com/spf13/cobra"
)

var (
	teamsSearch     string
	teamsTrack      string
	teamsEliminated string
	teamsMinScore   float64
	teamsOrder      string
	teamsPage       int
	teamsAll        bool
	teamsMaxPages   int
	teamsMore       bool
	teamsJSON       bool
)

func init() {
	f := teamsListCmd.Flags()
	f.StringVarP(&teamsSearch, "search", "s", "", "Free-text search on team and project titles")
	f.StringVar(&teamsTrack, "track", "", "Only teams in this track id")
	f.StringVar(&teamsEliminated, "eliminated", "any", "Elimination filter: any, true, or false")
	f.Float64Var(&teamsMinScore, "min-score", 0, "Minimum overall score (0 disables)")
	f.StringVar(&teamsOrder, "order", api.DefaultOrder, "Sort order token understood by the API")
	f.IntVar(&teamsPage, "page", teamlist.FirstPage, "Page to fetch (20 teams per page)")
	f.BoolVar(&teamsAll, "all", false, "Fetch every page until the listing is exhausted")
	f.IntVar(&teamsMaxPages, "max-pages", 0, "With --all, stop after this many pages (0 means no limit)")
	f.BoolVar(&teamsMore, "more", false, "After each page, ask whether to load the next one")
	f.BoolVar(&teamsJSON, "json", false, "Output in JSON format")
	teamsListCmd.MarkFlagsMutuallyExclusive("all", "more")
	teamsListCmd.MarkFlagsMutuallyExclusive("all", "page")
	teamsListCmd.MarkFlagsMutuallyExclusive("json", "more")

	teamsCmd.AddCommand(teamsListCmd)
	rootCmd.AddCommand(teamsCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Browse hackathon teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams with search, filters and pagination",
	Long: `List the hackathon's teams, 20 per page.

Examples:
  hackadmin teams list --search bots --eliminated false
  hackadmin teams list --track 4 --min-score 7.5 --all
  hackadmin teams list --more`,
	Args: cobra.NoArgs,
	RunE: runTeamsList,
}

func teamsFilter() (teamlist.Filter, error) {
	elim, err := teamlist.ParseElimination(teamsEliminated)
	if err != nil {
		return teamlist.Filter{}, err
	}
	if teamsMinScore < 0 {
		return teamlist.Filter{}, fmt.Errorf("--min-score must not be negative")
	}
	return teamlist.Filter{
		Search:      strings.TrimSpace(teamsSearch),
		TrackID:     teamsTrack,
		Elimination: elim,
		MinScore:    teamsMinScore,
		Order:       teamsOrder,
	}, nil
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	filter, err := teamsFilter()
	if err != nil {
		return err
	}

	a := newApp(cmd)
	if err := a.settings.RequireHackathon(true); err != nil {
		return err
	}
	fetcher := teamlist.New(a.client, teamlist.WithNotifier(a.notifier), teamlist.WithLogger(a.log))
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case teamsAll:
		teams, err := fetcher.FetchAll(ctx, filter, teamsMaxPages)
		if err != nil {
			return notified(err)
		}
		return printTeams(out, teams)

	case teamsMore:
		return browseTeams(cmd, fetcher, filter)

	default:
		if _, err := fetcher.Fetch(ctx, teamsPage, filter); err != nil {
			return notified(err)
		}
		return printTeams(out, fetcher.Teams())
	}
}

// browseTeams prints one page at a time and asks before loading the next.
func browseTeams(cmd *cobra.Command, fetcher *teamlist.Fetcher, filter teamlist.Filter) error {
	ctx := cmd.Context()
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if _, err := fetcher.Fetch(ctx, teamsPage, filter); err != nil {
		return notified(err)
	}
	shown := 0
	for {
		teams := fetcher.Teams()
		if shown == 0 || len(teams) > shown {
			if err := printTeams(out, teams[shown:]); err != nil {
				return err
			}
		}
		shown = len(teams)

		if !fetcher.HasMore() {
			fmt.Fprintln(cmd.ErrOrStderr(), numbers.Sprintf("%d teams, no more pages.", shown))
			return nil
		}
		fmt.Fprint(cmd.ErrOrStderr(), numbers.Sprintf("%d teams shown. Load more? [Y/n] ", shown))
		answer, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading answer: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if errors.Is(err, io.EOF) || answer == "n" || answer == "no" || answer == "q" {
			return nil
		}

		// An exhausted listing is reported by the next iteration.
		if _, err := fetcher.Next(ctx); err != nil && !errors.Is(err, teamlist.ErrExhausted) {
			return notified(err)
		}
	}
}

func printTeams(w io.Writer, teams []api.Team) error {
	if teamsJSON {
		if teams == nil {
			teams = []api.Team{}
		}
		return printJSON(w, teams)
	}
	if len(teams) == 0 {
		fmt.Fprintln(w, "No teams match.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEAM\tPROJECT\tTRACK\tSCORE\tSTATUS\tMEMBERS")
	for _, t := range teams {
		project, track := "-", "-"
		if t.Project != nil {
			project = dash(t.Project.Title)
		}
		if t.Track != nil {
			track = dash(t.Track.Title)
		}
		status := "active"
		if t.IsEliminated {
			status = "eliminated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			t.ID, t.Title, project, track, numbers.Sprintf("%.2f", t.RoundScore), status, len(t.Memberships))
	}
	return tw.Flush()
}
