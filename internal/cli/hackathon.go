package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/hackhub-labs/hackadmin/internal/notify"
	"github.com/hackhub-labs/hackadmin/internal/payload"
	"github.com/spf13/cobra"
)

var (
	endWinners     []string
	endWinnersFile string
	endYes         bool
)

func init() {
	hackathonEndCmd.Flags().StringSliceVar(&endWinners, "winner", nil, "Winning team id (repeatable)")
	hackathonEndCmd.Flags().StringVar(&endWinnersFile, "winners-file", "", "YAML file with a winners list")
	hackathonEndCmd.Flags().BoolVarP(&endYes, "yes", "y", false, "Do not ask for confirmation")
	hackathonEndCmd.MarkFlagsMutuallyExclusive("winner", "winners-file")

	hackathonCmd.AddCommand(hackathonEndCmd)
	rootCmd.AddCommand(hackathonCmd)
}

var hackathonCmd = &cobra.Command{
	Use:   "hackathon",
	Short: "Manage the hackathon itself",
}

var hackathonEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the hackathon and record the winners",
	Long: `End the hackathon. Winners are given as team ids with --winner, or as a YAML
file:

  winners:
    - team-12
    - team-31

Ending a hackathon cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		winners := endWinners
		if endWinnersFile != "" {
			var err error
			if winners, err = payload.LoadWinners(endWinnersFile); err != nil {
				return err
			}
		}

		a := newApp(cmd)
		if err := a.settings.RequireHackathon(true); err != nil {
			return err
		}

		if !endYes {
			fmt.Fprintf(cmd.ErrOrStderr(), "End hackathon %s with %d winner(s)? This cannot be undone. [y/N] ",
				a.settings.HackathonID, len(winners))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if reply := strings.ToLower(strings.TrimSpace(answer)); reply != "y" && reply != "yes" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
		}

		if err := a.client.EndHackathon(cmd.Context(), winners); err != nil {
			return a.fail(err, "Failed to end the hackathon")
		}
		a.notifier.Notify(notify.Success("Hackathon ended"))
		return nil
	},
}
