package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PageSize is the fixed number of teams requested per page.
const PageSize = 20

// DefaultOrder is the sort token used when none is given.
const DefaultOrder = "latest"

// TeamQuery is one page request against the team listing.
type TeamQuery struct {
	// Page is 1-based.
	Page    int
	Search  string
	TrackID string
	// MinScore is sent as overall_score when greater than zero.
	MinScore float64
	// IsEliminated is omitted when nil.
	IsEliminated *bool
	Order        string
}

// Values encodes the query string. page, limit, search and order are always
// present; the remaining filters only when set.
func (q TeamQuery) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	order := q.Order
	if order == "" {
		order = DefaultOrder
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(PageSize))
	v.Set("search", q.Search)
	if q.TrackID != "" {
		v.Set("track_id", q.TrackID)
	}
	if q.MinScore > 0 {
		v.Set("overall_score", strconv.FormatFloat(q.MinScore, 'f', -1, 64))
	}
	if q.IsEliminated != nil {
		v.Set("is_eliminated", strconv.FormatBool(*q.IsEliminated))
	}
	v.Set("order", order)
	return v
}

// ListTeams fetches one page of teams.
func (c *Client) ListTeams(ctx context.Context, q TeamQuery) ([]Team, error) {
	path, err := c.orgHackathonPath("/teams")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, path, q.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}
