package cli

import (
	"fmt"
	"strings"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/notify"
	"github.com/hackhub-labs/hackadmin/internal/payload"
	"github.com/spf13/cobra"
)

var (
	announceTitle       string
	announceDescription string
	announceFile        string
)

func init() {
	announceCreateCmd.Flags().StringVarP(&announceTitle, "title", "t", "", "Announcement title")
	announceCreateCmd.Flags().StringVarP(&announceDescription, "description", "d", "", "Announcement body")
	announceCreateCmd.Flags().StringVarP(&announceFile, "file", "f", "", "YAML file with title and description")
	announceCreateCmd.MarkFlagsMutuallyExclusive("file", "title")
	announceCreateCmd.MarkFlagsMutuallyExclusive("file", "description")

	announceCmd.AddCommand(announceCreateCmd)
	rootCmd.AddCommand(announceCmd)
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Publish announcements to participants",
}

var announceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an announcement",
	Long: `Create an announcement from flags or from a YAML file:

  title: Judging starts at 18:00
  description: Have your demo ready and your repositories linked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req api.AnnouncementRequest
		if announceFile != "" {
			var err error
			if req, err = payload.LoadAnnouncement(announceFile); err != nil {
				return err
			}
		} else {
			req = api.AnnouncementRequest{
				Title:       strings.TrimSpace(announceTitle),
				Description: strings.TrimSpace(announceDescription),
			}
			if err := payload.CheckAnnouncement(req); err != nil {
				return err
			}
		}

		a := newApp(cmd)
		if err := a.settings.RequireHackathon(true); err != nil {
			return err
		}

		created, err := a.client.CreateAnnouncement(cmd.Context(), req)
		if err != nil {
			return a.fail(err, "Failed to create announcement")
		}
		msg := fmt.Sprintf("Announcement %q published", created.Title)
		if created.ID != "" {
			msg += " (id " + string(created.ID) + ")"
		}
		a.notifier.Notify(notify.Success(msg))
		return nil
	},
}
