package api

import (
	"context"
	"net/http"
)

// CurrentRound returns the round participants are currently in. It returns
// nil when the hackathon has no active round.
func (c *Client) CurrentRound(ctx context.Context) (*Round, error) {
	path, err := c.hackathonPath("/participants/round")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Round *Round `json:"round"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Round, nil
}

// Rounds returns every round of the hackathon.
func (c *Client) Rounds(ctx context.Context) ([]Round, error) {
	path, err := c.orgHackathonPath("/rounds")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Rounds []Round `json:"rounds"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rounds, nil
}
