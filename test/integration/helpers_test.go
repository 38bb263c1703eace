//go:build integration

package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hackhub-labs/hackadmin/internal/api"
)

const (
	testOrg       = "org-1"
	testHackathon = "hack-7"
	testToken     = "admin-token"
)

// fakeBackend is an in-memory stand-in for the hackathon REST API.
type fakeBackend struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	teams         []api.Team
	rounds        []api.Round
	repos         map[string][]api.GitHubRepo
	announcements []api.Announcement
	winners       []string
	ended         bool
	teamRequests  []string
}

// newFakeBackend starts a fake API server that is closed when the test ends.
func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{t: t, repos: map[string][]api.GitHubRepo{}}
	org := "/org/" + testOrg + "/hackathons/" + testHackathon
	participants := "/hackathons/" + testHackathon + "/participants"

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+org+"/teams", b.handleTeams)
	mux.HandleFunc("GET "+org+"/rounds", b.handleRounds)
	mux.HandleFunc("POST "+org+"/end", b.handleEnd)
	mux.HandleFunc("POST "+org+"/announcements", b.handleAnnounce)
	mux.HandleFunc("GET "+participants+"/round", b.handleCurrentRound)
	mux.HandleFunc("GET "+participants+"/connections/{team}", b.handleConnections)
	mux.HandleFunc("DELETE "+participants+"/teams/{team}/project/github/{repo}", b.handleDeleteRepo)

	b.server = httptest.NewServer(b.authorize(mux))
	t.Cleanup(b.server.Close)
	return b
}

// client returns an API client scoped to the fake org and hackathon.
func (b *fakeBackend) client() *api.Client {
	return api.New(b.server.URL,
		api.WithToken(testToken),
		api.WithOrg(testOrg),
		api.WithHackathon(testHackathon),
	)
}

func (b *fakeBackend) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) handleTeams(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	q := r.URL.Query()
	b.teamRequests = append(b.teamRequests, r.URL.RawQuery)

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 || limit < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad paging"})
		return
	}

	var matched []api.Team
	for _, team := range b.teams {
		if s := q.Get("search"); s != "" && !strings.Contains(strings.ToLower(team.Title), strings.ToLower(s)) {
			continue
		}
		if v := q.Get("is_eliminated"); v != "" && strconv.FormatBool(team.IsEliminated) != v {
			continue
		}
		if v := q.Get("track_id"); v != "" && (team.Track == nil || string(team.Track.ID) != v) {
			continue
		}
		matched = append(matched, team)
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+limit, len(matched))
	writeJSON(w, http.StatusOK, map[string]any{"teams": matched[start:end]})
}

func (b *fakeBackend) handleRounds(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"rounds": b.rounds})
}

func (b *fakeBackend) handleCurrentRound(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.rounds) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"round": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"round": b.rounds[0]})
}

func (b *fakeBackend) handleEnd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Winners []string `json:"winners"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Winners == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "winners is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ended {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Hackathon already ended"})
		return
	}
	b.ended = true
	b.winners = body.Winners
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hackathon ended"})
}

func (b *fakeBackend) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req api.AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a := api.Announcement{
		ID:          api.ID(strconv.Itoa(len(b.announcements) + 1)),
		Title:       req.Title,
		Description: req.Description,
	}
	b.announcements = append(b.announcements, a)
	writeJSON(w, http.StatusCreated, map[string]any{"announcement": a})
}

func (b *fakeBackend) handleConnections(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	repos, ok := b.repos[r.PathValue("team")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Team not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"githubRepos": repos})
}

func (b *fakeBackend) handleDeleteRepo(w http.ResponseWriter, r *http.Request) {
	repoID := r.PathValue("repo")
	if r.URL.Query().Get("repoID") != repoID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "repoID mismatch"})
		return
	}
	var body struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "project_id is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	team := r.PathValue("team")
	repos := b.repos[team]
	for i, repo := range repos {
		if string(repo.ID) == repoID {
			b.repos[team] = append(repos[:i:i], repos[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Repository not linked"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// seedTeams adds n teams named "Team 1".."Team n"; every third is eliminated.
func (b *fakeBackend) seedTeams(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 1; i <= n; i++ {
		b.teams = append(b.teams, api.Team{
			ID:           api.ID(strconv.Itoa(i)),
			Title:        fmt.Sprintf("Team %d", i),
			Project:      &api.Project{ID: api.ID("p" + strconv.Itoa(i)), Title: fmt.Sprintf("Project %d", i)},
			Track:        &api.Track{ID: api.ID(strconv.Itoa(i%2 + 1)), Title: "Track"},
			IsEliminated: i%3 == 0,
			RoundScore:   float64(i),
		})
	}
}

// writeFile creates a file and any missing parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// requests returns the raw query of every team listing request so far.
func (b *fakeBackend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.teamRequests...)
}

// endState reports whether the hackathon was ended and with which winners.
func (b *fakeBackend) endState() (bool, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ended, append([]string(nil), b.winners...)
}

// seedRepos links repos to a team.
func (b *fakeBackend) seedRepos(teamID string, repos ...api.GitHubRepo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.repos[teamID] = append(b.repos[teamID], repos...)
}

// seedRounds schedules rounds; the first one is reported as current.
func (b *fakeBackend) seedRounds(rounds ...api.Round) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rounds = append(b.rounds, rounds...)
}
