package api

import (
	"context"
	"net/http"
	"net/url"
)

// Connections returns the GitHub repositories linked to a team's project.
func (c *Client) Connections(ctx context.Context, teamID string) ([]GitHubRepo, error) {
	path, err := c.hackathonPath("/participants/connections/%s", url.PathEscape(teamID))
	if err != nil {
		return nil, err
	}
	var resp struct {
		GitHubRepos []GitHubRepo `json:"githubRepos"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.GitHubRepos, nil
}

// DeleteGitHubRepo unlinks one repository from a team's project. The
// repository id travels both in the path and as the repoID query parameter,
// which is what the backend route expects.
func (c *Client) DeleteGitHubRepo(ctx context.Context, teamID, repoID, projectID string) error {
	path, err := c.hackathonPath("/participants/teams/%s/project/github/%s",
		url.PathEscape(teamID), url.PathEscape(repoID))
	if err != nil {
		return err
	}
	query := url.Values{"repoID": {repoID}}
	body := struct {
		ProjectID string `json:"project_id"`
	}{projectID}
	return c.do(ctx, http.MethodDelete, path, query, body, nil)
}
