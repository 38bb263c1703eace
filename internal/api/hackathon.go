package api

import (
	"context"
	"net/http"
)

// EndHackathon marks the hackathon as ended with the given winning team ids.
func (c *Client) EndHackathon(ctx context.Context, winners []string) error {
	path, err := c.orgHackathonPath("/end")
	if err != nil {
		return err
	}
	if winners == nil {
		winners = []string{}
	}
	body := struct {
		Winners []string `json:"winners"`
	}{winners}
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// AnnouncementRequest is the body of a new announcement.
type AnnouncementRequest struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// CreateAnnouncement publishes an announcement to all participants.
func (c *Client) CreateAnnouncement(ctx context.Context, req AnnouncementRequest) (*Announcement, error) {
	path, err := c.orgHackathonPath("/announcements")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Announcement *Announcement `json:"announcement"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Announcement == nil {
		return &Announcement{Title: req.Title, Description: req.Description}, nil
	}
	return resp.Announcement, nil
}
