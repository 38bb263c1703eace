package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hackhub-labs/hackadmin/internal/payload"
	"github.com/hackhub-labs/hackadmin/internal/teamlist"
)

const teamsPath = "/org/org-1/hackathons/hack-1/teams"

func teamsJSONPage(ids ...string) string {
	var parts []string
	for _, id := range ids {
		parts = append(parts, `{"id":"`+id+`","title":"Team `+id+`","project":{"id":"p`+id+`","title":"Bot"},`+
			`"track":{"id":"2","title":"AI"},"is_eliminated":false,"round_score":1234.5,"memberships":[{"id":1,"user":{"id":7,"name":"Ada"}}]}`)
	}
	return `{"teams":[` + strings.Join(parts, ",") + `]}`
}

func TestTeamsListPrintsTable(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, teamsPath, http.StatusOK, teamsJSONPage("1", "2"))

	out, _, err := run(t, "", "teams", "list", "--search", " bots ", "--eliminated", "false", "--track", "2")
	if err != nil {
		t.Fatalf("teams list: %v", err)
	}
	for _, want := range []string{"TEAM", "Team 1", "Team 2", "AI", "1,234.50", "active"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	reqs := api.seen()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	q, _ := url.ParseQuery(reqs[0].Query)
	checks := map[string]string{
		"page": "1", "limit": "20", "search": "bots", "track_id": "2",
		"is_eliminated": "false", "order": "latest",
	}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Errorf("query %s = %q, want %q", k, got, want)
		}
	}
	if q.Has("overall_score") {
		t.Error("overall_score should be omitted when unset")
	}
}

func TestTeamsListJSON(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, teamsPath, http.StatusOK, `{"teams":[]}`)

	out, _, err := run(t, "", "teams", "list", "--json")
	if err != nil {
		t.Fatalf("teams list --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}

func TestTeamsListServerError(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, teamsPath, http.StatusForbidden, `{"message":"Organizers only"}`)

	_, stderr, err := run(t, "", "teams", "list")
	if !errors.Is(err, errNotified) {
		t.Fatalf("err = %v, want a notified error", err)
	}
	if !strings.Contains(stderr, "error: Organizers only") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTeamsListRejectsConflictingFlags(t *testing.T) {
	api := setupCLI(t)

	if _, _, err := run(t, "", "teams", "list", "--all", "--more"); err == nil {
		t.Error("--all with --more should fail")
	}
	if _, _, err := run(t, "", "teams", "list", "--eliminated", "maybe"); err == nil {
		t.Error("invalid --eliminated should fail")
	}
	if n := len(api.seen()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestTeamsListMoreStopsOnNo(t *testing.T) {
	api := setupCLI(t)
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	api.respond(http.MethodGet, teamsPath, http.StatusOK, teamsJSONPage(ids...))

	out, stderr, err := run(t, "n\n", "teams", "list", "--more")
	if err != nil {
		t.Fatalf("teams list --more: %v", err)
	}
	if !strings.Contains(stderr, "Load more?") {
		t.Errorf("stderr = %q, want a prompt", stderr)
	}
	if !strings.Contains(out, "Team a") {
		t.Errorf("output missing first page:\n%s", out)
	}
	if n := len(api.seen()); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestTeamsFilterFromFlags(t *testing.T) {
	resetFlags(rootCmd)
	teamsSearch = "  robots "
	teamsEliminated = "true"
	teamsMinScore = 4.5

	f, err := teamsFilter()
	if err != nil {
		t.Fatalf("teamsFilter: %v", err)
	}
	if f.Search != "robots" || f.Elimination != teamlist.Eliminated || f.MinScore != 4.5 || f.Order != "latest" {
		t.Errorf("filter = %+v", f)
	}

	teamsMinScore = -1
	if _, err := teamsFilter(); err == nil {
		t.Error("negative --min-score should fail")
	}
	resetFlags(rootCmd)
}

func TestRoundsCurrentNoRound(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, "/hackathons/hack-1/participants/round", http.StatusOK, `{"round":null}`)

	out, _, err := run(t, "", "rounds", "current")
	if err != nil {
		t.Fatalf("rounds current: %v", err)
	}
	if !strings.Contains(out, "No active round.") {
		t.Errorf("output = %q", out)
	}
}

func TestRoundsList(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, "/org/org-1/hackathons/hack-1/rounds", http.StatusOK,
		`{"rounds":[{"id":1,"index":1,"start_time":"2020-01-01T09:00:00Z","end_time":"2020-01-01T18:00:00Z"}]}`)

	out, _, err := run(t, "", "rounds", "list")
	if err != nil {
		t.Fatalf("rounds list: %v", err)
	}
	if !strings.Contains(out, "ended") {
		t.Errorf("output = %q, want the round marked ended", out)
	}
}

func TestHackathonEndAbortsWithoutConfirmation(t *testing.T) {
	api := setupCLI(t)

	_, stderr, err := run(t, "n\n", "hackathon", "end", "--winner", "t1")
	if err != nil {
		t.Fatalf("hackathon end: %v", err)
	}
	if !strings.Contains(stderr, "Aborted.") {
		t.Errorf("stderr = %q", stderr)
	}
	if n := len(api.seen()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestHackathonEndSendsWinners(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodPost, "/org/org-1/hackathons/hack-1/end", http.StatusOK, `{"message":"ok"}`)

	_, stderr, err := run(t, "", "hackathon", "end", "--yes", "--winner", "t1", "--winner", "t2")
	if err != nil {
		t.Fatalf("hackathon end: %v", err)
	}
	if !strings.Contains(stderr, "ok: Hackathon ended") {
		t.Errorf("stderr = %q", stderr)
	}

	reqs := api.seen()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	var body struct {
		Winners []string `json:"winners"`
	}
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil {
		t.Fatalf("decoding body %q: %v", reqs[0].Body, err)
	}
	if strings.Join(body.Winners, ",") != "t1,t2" {
		t.Errorf("winners = %v", body.Winners)
	}
}

func TestHackathonEndWithoutWinnersSendsEmptyList(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodPost, "/org/org-1/hackathons/hack-1/end", http.StatusOK, `{}`)

	if _, _, err := run(t, "", "hackathon", "end", "-y"); err != nil {
		t.Fatalf("hackathon end: %v", err)
	}
	reqs := api.seen()
	if len(reqs) != 1 || reqs[0].Body != `{"winners":[]}` {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestAnnounceCreateValidatesBeforeSending(t *testing.T) {
	api := setupCLI(t)

	_, _, err := run(t, "", "announce", "create", "--title", "  ")
	var ve *payload.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *payload.ValidationError", err)
	}
	if n := len(api.seen()); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestAnnounceCreateFromFile(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodPost, "/org/org-1/hackathons/hack-1/announcements", http.StatusCreated,
		`{"announcement":{"id":5,"title":"Lunch","description":"Pizza in hall A"}}`)

	path := filepath.Join(t.TempDir(), "a.yaml")
	if err := os.WriteFile(path, []byte("title: Lunch\ndescription: Pizza in hall A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := run(t, "", "announce", "create", "-f", path)
	if err != nil {
		t.Fatalf("announce create: %v", err)
	}
	if !strings.Contains(stderr, `ok: Announcement "Lunch" published (id 5)`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestReposLinkNoBrowserPrintsAuthorizeURL(t *testing.T) {
	setupCLI(t)

	out, _, err := run(t, "", "repos", "link", "--team", "t 1",
		"--url", "https://github.com/acme/api", "--url", "https://github.com/acme/web", "--no-browser")
	if err != nil {
		t.Fatalf("repos link: %v", err)
	}
	u, err := url.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("parsing %q: %v", out, err)
	}
	if u.Host != "backend.example.org" || u.Path != "/auth/github/t 1" {
		t.Errorf("url = %s", u)
	}
	if got := u.Query().Get("repo_links"); got != "https://github.com/acme/api,https://github.com/acme/web" {
		t.Errorf("repo_links = %q", got)
	}
	if got := u.Query().Get("token"); got != "secret-token" {
		t.Errorf("token = %q", got)
	}
}

func TestReposLinkOpensBrowser(t *testing.T) {
	setupCLI(t)
	var opened string
	orig := openBrowser
	openBrowser = func(u string) error { opened = u; return nil }
	t.Cleanup(func() { openBrowser = orig })

	if _, _, err := run(t, "", "repos", "link", "--team", "t1", "--url", "https://github.com/acme/api"); err != nil {
		t.Fatalf("repos link: %v", err)
	}
	if !strings.HasPrefix(opened, "https://backend.example.org/auth/github/t1?") {
		t.Errorf("opened = %q", opened)
	}
}

func TestReposLinkRejectsInvalidURL(t *testing.T) {
	setupCLI(t)

	_, _, err := run(t, "", "repos", "link", "--team", "t1", "--url", "github.com/acme/api", "--no-browser")
	if err == nil {
		t.Fatal("expected an error for a URL without scheme")
	}
}

func TestReposCallback(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantErr    bool
		wantStderr string
		wantOut    string
	}{
		{
			name:       "success",
			url:        "https://admin.example.org/teams/1?tab=repos&status=success&username=octocat",
			wantStderr: "ok: GitHub connected as octocat",
			wantOut:    "https://admin.example.org/teams/1?tab=repos",
		},
		{
			name:       "failure with message",
			url:        "https://admin.example.org/teams/1?status=error&message=Access+denied",
			wantErr:    true,
			wantStderr: "error: Access denied",
			wantOut:    "https://admin.example.org/teams/1",
		},
		{
			name:    "no outcome",
			url:     "https://admin.example.org/teams/1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			out, stderr, err := run(t, "", "repos", "callback", tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
			if strings.TrimSpace(out) != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestReposDelete(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, "/hackathons/hack-1/participants/connections/t1", http.StatusOK,
		`{"githubRepos":[{"id":"r1","name":"api","url":"https://github.com/acme/api"},{"id":"r2","name":"web","url":"https://github.com/acme/web"}]}`)
	api.respond(http.MethodDelete, "/hackathons/hack-1/participants/teams/t1/project/github/r1", http.StatusOK, `{}`)

	out, stderr, err := run(t, "", "repos", "delete", "--team", "t1", "--project", "p9", "r1")
	if err != nil {
		t.Fatalf("repos delete: %v", err)
	}
	if !strings.Contains(stderr, "ok: Repository removed") {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(out, "acme/api") || !strings.Contains(out, "acme/web") {
		t.Errorf("remaining list = %q", out)
	}

	reqs := api.seen()
	del := reqs[len(reqs)-1]
	if del.Method != http.MethodDelete || del.Query != "repoID=r1" || del.Body != `{"project_id":"p9"}` {
		t.Errorf("delete request = %+v", del)
	}
}

func TestReposDeleteFailureKeepsList(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, "/hackathons/hack-1/participants/connections/t1", http.StatusOK,
		`{"githubRepos":[{"id":"r1","name":"api","url":"https://github.com/acme/api"}]}`)
	api.respond(http.MethodDelete, "/hackathons/hack-1/participants/teams/t1/project/github/r1", http.StatusInternalServerError, `{}`)

	_, stderr, err := run(t, "", "repos", "delete", "--team", "t1", "--project", "p9", "r1")
	if !errors.Is(err, errNotified) {
		t.Fatalf("err = %v, want a notified error", err)
	}
	if !strings.Contains(stderr, "error: Failed to delete repository") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigSetGetKeys(t *testing.T) {
	setupCLI(t)

	out, _, err := run(t, "", "config", "set", "github_token", "ghp_abcdef1234")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if !strings.Contains(out, "****1234") || strings.Contains(out, "abcdef") {
		t.Errorf("set output should mask the token: %q", out)
	}

	out, _, err = run(t, "", "config", "get", "github_token")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "ghp_abcdef1234" {
		t.Errorf("get = %q", out)
	}

	if _, _, err := run(t, "", "config", "set", "colour", "blue"); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"org_id", "org-1", "org-1"},
		{"token", "", ""},
		{"token", "abc", "****"},
		{"github_token", "ghp_123456789", "****6789"},
	}
	for _, tt := range tests {
		if got := displayValue(tt.key, tt.value); got != tt.want {
			t.Errorf("displayValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestDoctorCheckFile(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "winners.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("winners: [t1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("winners: [t1, t1]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "doctor", "--check-file", good, "--kind", "winners")
	if err != nil || !strings.Contains(out, "[ OK ] Valid winners payload") {
		t.Errorf("good file: err=%v out=%q", err, out)
	}
	out, _, err = run(t, "", "doctor", "--check-file", bad, "--kind", "winners")
	if err == nil || !strings.Contains(out, "[FAIL]") {
		t.Errorf("bad file: err=%v out=%q", err, out)
	}
}

func TestDoctorReportsAPIFailure(t *testing.T) {
	api := setupCLI(t)
	api.respond(http.MethodGet, "/hackathons/hack-1/participants/round", http.StatusUnauthorized, `{"message":"Token expired"}`)

	out, _, err := run(t, "", "doctor")
	if err == nil {
		t.Fatal("doctor should fail when the API rejects the token")
	}
	if !strings.Contains(out, "Token expired") || !strings.Contains(out, "[ OK ] token = ****oken") {
		t.Errorf("output = %q", out)
	}
}
