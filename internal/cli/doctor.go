package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/config"
	"github.com/hackhub-labs/hackadmin/internal/payload"
	"github.com/spf13/cobra"
)

var (
	doctorFix       bool
	doctorCheckFile string
	doctorFileKind  string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Restrict config file permissions to the current user")
	doctorCmd.Flags().StringVar(&doctorCheckFile, "check-file", "", "Validate a payload file instead of the setup")
	doctorCmd.Flags().StringVar(&doctorFileKind, "kind", string(payload.KindAnnouncement), "Payload kind for --check-file: announcement or winners")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and API access",
	Long:  `Run diagnostic checks on the local configuration and the configured API.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if doctorCheckFile != "" {
			return runPayloadCheck(out, payload.Kind(doctorFileKind), doctorCheckFile)
		}

		a := newApp(cmd)
		failed := checkConfigFile(out, doctorFix)
		failed += checkSettings(out, a.settings)
		if a.settings.RequireHackathon(false) == nil && a.settings.Token != "" {
			failed += checkAPI(cmd, out, a)
		}
		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func checkConfigFile(w io.Writer, fix bool) int {
	path := config.FilePath()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "[WARN] No config file at %s (environment only)\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "[FAIL] Config file: %v\n", err)
		return 1
	}

	// Windows has no Unix permission bits.
	if runtime.GOOS == "windows" || info.Mode().Perm()&0o077 == 0 {
		fmt.Fprintf(w, "[ OK ] Config file %s\n", path)
		return 0
	}
	if !fix {
		fmt.Fprintf(w, "[WARN] Config file %s is readable by other users (%o); run with --fix\n", path, info.Mode().Perm())
		return 0
	}
	if err := os.Chmod(path, 0o600); err != nil {
		fmt.Fprintf(w, "[FAIL] Restricting %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(w, "[ OK ] Config file %s restricted to 600\n", path)
	return 0
}

func checkSettings(w io.Writer, s config.Settings) int {
	failed := 0
	required := []struct{ key, value string }{
		{config.KeyAPIURL, s.APIURL},
		{config.KeyOrgID, s.OrgID},
		{config.KeyHackathonID, s.HackathonID},
		{config.KeyToken, s.Token},
	}
	for _, r := range required {
		if r.value == "" {
			fmt.Fprintf(w, "[FAIL] %s is not set\n", r.key)
			failed++
			continue
		}
		fmt.Fprintf(w, "[ OK ] %s = %s\n", r.key, displayValue(r.key, r.value))
	}
	if s.GitHubToken == "" {
		fmt.Fprintf(w, "[WARN] %s is not set; repos link --verify only sees public repositories\n", config.KeyGitHubToken)
	}
	return failed
}

func checkAPI(cmd *cobra.Command, w io.Writer, a *app) int {
	round, err := a.client.CurrentRound(cmd.Context())
	if err != nil {
		fmt.Fprintf(w, "[FAIL] API %s: %s\n", a.settings.APIURL, api.MessageOr(err, err.Error()))
		return 1
	}
	if round == nil {
		fmt.Fprintf(w, "[ OK ] API %s reachable (no active round)\n", a.settings.APIURL)
	} else {
		fmt.Fprintf(w, "[ OK ] API %s reachable (round %d)\n", a.settings.APIURL, round.Index)
	}
	return 0
}

func runPayloadCheck(w io.Writer, kind payload.Kind, path string) error {
	fmt.Fprintf(w, "Payload validation (%s): %s\n", kind, path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading %s: %w", path, err)
	}
	issues, err := payload.Validate(kind, data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("payload validation failed: %w", err)
	}
	if len(issues) == 0 {
		fmt.Fprintf(w, "  [ OK ] Valid %s payload\n", kind)
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(issues))
	for _, issue := range issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("%s has %d validation issue(s)", path, len(issues))
}
