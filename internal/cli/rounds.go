package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/hackhub-labs/hackadmin/internal/rounds"
	"github.com/spf13/cobra"
)

var roundsJSON bool

func init() {
	roundsCmd.PersistentFlags().BoolVar(&roundsJSON, "json", false, "Output in JSON format")
	roundsCmd.AddCommand(roundsListCmd)
	roundsCmd.AddCommand(roundsCurrentCmd)
	rootCmd.AddCommand(roundsCmd)
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Show hackathon rounds",
}

// roundView is the JSON shape of a round with its live phase.
type roundView struct {
	ID        string     `json:"id"`
	Index     int        `json:"index"`
	Phase     string     `json:"phase"`
	Start     time.Time  `json:"start_time"`
	End       time.Time  `json:"end_time"`
	Next      string     `json:"next,omitempty"`
	NextAt    *time.Time `json:"next_at,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
}

func newRoundView(s rounds.Summary) roundView {
	v := roundView{
		ID:        string(s.Round.ID),
		Index:     s.Round.Index,
		Phase:     string(s.Phase),
		Start:     s.Round.StartTime,
		End:       s.Round.EndTime,
		Next:      s.NextLabel,
		Remaining: s.Relative,
	}
	if !s.Next.IsZero() {
		next := s.Next
		v.NextAt = &next
	}
	return v
}

var roundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every round with its current phase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		if err := a.settings.RequireHackathon(true); err != nil {
			return err
		}

		all, err := a.client.Rounds(cmd.Context())
		if err != nil {
			return a.fail(err, "Failed to fetch rounds")
		}

		now := time.Now()
		views := make([]roundView, 0, len(all))
		for _, r := range all {
			views = append(views, newRoundView(rounds.Summarize(r, now)))
		}

		out := cmd.OutOrStdout()
		if roundsJSON {
			return printJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No rounds scheduled.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "ROUND\tID\tSTART\tEND\tJUDGING\tPHASE")
		for _, r := range all {
			judging := "-"
			if !r.JudgingStartTime.IsZero() {
				judging = formatTime(r.JudgingStartTime) + " - " + formatTime(r.JudgingEndTime)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.Index, r.ID,
				formatTime(r.StartTime), formatTime(r.EndTime), judging, rounds.PhaseAt(r, now))
		}
		return tw.Flush()
	},
}

var roundsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the live round and time to its next boundary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		if err := a.settings.RequireHackathon(false); err != nil {
			return err
		}

		round, err := a.client.CurrentRound(cmd.Context())
		if err != nil {
			return a.fail(err, "Failed to fetch the current round")
		}

		out := cmd.OutOrStdout()
		if round == nil {
			if roundsJSON {
				return printJSON(out, nil)
			}
			fmt.Fprintln(out, "No active round.")
			return nil
		}

		s := rounds.Summarize(*round, time.Now())
		if roundsJSON {
			return printJSON(out, newRoundView(s))
		}

		fmt.Fprintf(out, "Round %d (%s)\n", round.Index, s.Phase)
		fmt.Fprintf(out, "  Build:   %s - %s\n", formatTime(round.StartTime), formatTime(round.EndTime))
		if !round.JudgingStartTime.IsZero() {
			fmt.Fprintf(out, "  Judging: %s - %s\n", formatTime(round.JudgingStartTime), formatTime(round.JudgingEndTime))
		}
		if s.NextLabel != "" {
			fmt.Fprintf(out, "  Next:    %s %s\n", s.NextLabel, s.Relative)
		}
		return nil
	},
}
