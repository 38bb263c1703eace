package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// recordedRequest is one request seen by the fake API.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeAPI serves canned responses keyed by "METHOD /path" and records every
// request it receives.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

// setupCLI isolates configuration, points the CLI at a fake API rooted at
// /api/v1, and returns the fake.
func setupCLI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{responses: map[string]fakeResponse{}}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)

	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HACKADMIN_HOME", t.TempDir())
	t.Setenv("HACKADMIN_NO_UPDATE_CHECK", "1")
	t.Setenv("HACKADMIN_API_URL", server.URL+"/api/v1")
	t.Setenv("HACKADMIN_ORG_ID", "org-1")
	t.Setenv("HACKADMIN_HACKATHON_ID", "hack-1")
	t.Setenv("HACKADMIN_TOKEN", "secret-token")
	t.Setenv("HACKADMIN_BACKEND_URL", "https://backend.example.org")
	return f
}

// respond registers a response for method and path (relative to /api/v1).
func (f *fakeAPI) respond(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" /api/v1"+path] = fakeResponse{status: status, body: body}
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	_, _ = body.ReadFrom(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   strings.TrimPrefix(r.URL.Path, "/api/v1"),
		Query:  r.URL.RawQuery,
		Body:   body.String(),
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		resp = fakeResponse{status: http.StatusNotFound, body: `{"message":"no such route"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAPI) seen() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag in the command tree to its default, since
// flag variables and their Changed state outlive a single execution.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
