package repolink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// CheckStatus is the outcome of verifying one link.
type CheckStatus string

const (
	StatusFound    CheckStatus = "found"
	StatusNotFound CheckStatus = "not-found"
	StatusSkipped  CheckStatus = "skipped"
	StatusError    CheckStatus = "error"
)

// Check is the verification result for one URL.
type Check struct {
	URL      string
	Owner    string
	Repo     string
	Status   CheckStatus
	FullName string
	Private  bool
	Err      error
}

// Verifier confirms that links point at repositories GitHub knows about.
type Verifier struct {
	gh *github.Client
}

// NewVerifier creates a verifier. token may be empty; without one only public
// repositories can be found and GitHub's anonymous rate limit applies.
func NewVerifier(ctx context.Context, token string) *Verifier {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return &Verifier{gh: github.NewClient(hc)}
}

// SetBaseURL points the verifier at a different GitHub API root, such as a
// GitHub Enterprise server.
func (v *Verifier) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing GitHub API URL: %w", err)
	}
	v.gh.BaseURL = u
	return nil
}

// Verify checks every link. Links that are not github.com repository URLs are
// reported as skipped.
func (v *Verifier) Verify(ctx context.Context, links []string) []Check {
	checks := make([]Check, 0, len(links))
	for _, link := range links {
		checks = append(checks, v.verifyOne(ctx, link))
	}
	return checks
}

func (v *Verifier) verifyOne(ctx context.Context, link string) Check {
	c := Check{URL: link}
	owner, repo, ok := GitHubRepoFromURL(link)
	if !ok {
		c.Status = StatusSkipped
		return c
	}
	c.Owner, c.Repo = owner, repo

	r, resp, err := v.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			c.Status = StatusNotFound
			return c
		}
		c.Status = StatusError
		c.Err = err
		return c
	}

	c.Status = StatusFound
	c.FullName = r.GetFullName()
	c.Private = r.GetPrivate()
	return c
}

// GitHubRepoFromURL extracts owner and repository name from a github.com URL.
// Extra path segments (tree/blob links) and a trailing .git are ignored.
func GitHubRepoFromURL(raw string) (owner, repo string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
