package teamlist

import (
	"fmt"
	"strings"

	"github.com/hackhub-labs/hackadmin/internal/api"
)

// Elimination is the tri-state elimination filter.
type Elimination int

const (
	// Any matches every team.
	Any Elimination = iota
	// Eliminated matches only eliminated teams.
	Eliminated
	// NotEliminated matches only teams still in the hackathon.
	NotEliminated
)

// ParseElimination reads the filter from user input. The empty string means Any.
func ParseElimination(s string) (Elimination, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return Any, nil
	case "true", "yes", "eliminated":
		return Eliminated, nil
	case "false", "no", "active", "not-eliminated":
		return NotEliminated, nil
	default:
		return Any, fmt.Errorf("invalid elimination filter %q: use any, true, or false", s)
	}
}

func (e Elimination) String() string {
	switch e {
	case Eliminated:
		return "eliminated"
	case NotEliminated:
		return "not-eliminated"
	default:
		return "any"
	}
}

func (e Elimination) param() *bool {
	switch e {
	case Eliminated:
		v := true
		return &v
	case NotEliminated:
		v := false
		return &v
	default:
		return nil
	}
}

// Filter is the in-memory filter state of a team listing.
type Filter struct {
	Search      string
	TrackID     string
	Elimination Elimination
	// MinScore is the minimum overall score; zero disables it.
	MinScore float64
	// Order is the backend sort token; empty means api.DefaultOrder.
	Order string
}

// Query builds the API request for one page under this filter.
func (f Filter) Query(page int) api.TeamQuery {
	return api.TeamQuery{
		Page:         page,
		Search:       f.Search,
		TrackID:      f.TrackID,
		MinScore:     f.MinScore,
		IsEliminated: f.Elimination.param(),
		Order:        f.Order,
	}
}
