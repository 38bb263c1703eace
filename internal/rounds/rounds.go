// Package rounds derives the live state of hackathon rounds from their
// schedule.
package rounds

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hackhub-labs/hackadmin/internal/api"
)

// Phase is where a round stands at a point in time.
type Phase string

const (
	PhaseUpcoming        Phase = "upcoming"
	PhaseBuilding        Phase = "building"
	PhaseAwaitingJudging Phase = "awaiting-judging"
	PhaseJudging         Phase = "judging"
	PhaseEnded           Phase = "ended"
)

// PhaseAt classifies r at now. Judging times are optional; a round without
// them ends with its build window.
func PhaseAt(r api.Round, now time.Time) Phase {
	switch {
	case now.Before(r.StartTime):
		return PhaseUpcoming
	case r.EndTime.IsZero() || now.Before(r.EndTime):
		return PhaseBuilding
	case r.JudgingStartTime.IsZero():
		return PhaseEnded
	case now.Before(r.JudgingStartTime):
		return PhaseAwaitingJudging
	case r.JudgingEndTime.IsZero() || now.Before(r.JudgingEndTime):
		return PhaseJudging
	default:
		return PhaseEnded
	}
}

// Summary is a display-ready description of a round.
type Summary struct {
	Round api.Round
	Phase Phase
	// Next is the next boundary ahead of now; zero once the round is over.
	Next time.Time
	// NextLabel names the boundary, e.g. "ends" or "judging starts".
	NextLabel string
	// Relative is Next relative to now, e.g. "3 hours from now".
	Relative string
}

// Summarize describes r at now.
func Summarize(r api.Round, now time.Time) Summary {
	s := Summary{Round: r, Phase: PhaseAt(r, now)}
	switch s.Phase {
	case PhaseUpcoming:
		s.Next, s.NextLabel = r.StartTime, "starts"
	case PhaseBuilding:
		s.Next, s.NextLabel = r.EndTime, "ends"
	case PhaseAwaitingJudging:
		s.Next, s.NextLabel = r.JudgingStartTime, "judging starts"
	case PhaseJudging:
		s.Next, s.NextLabel = r.JudgingEndTime, "judging ends"
	}
	if !s.Next.IsZero() {
		s.Relative = humanize.RelTime(s.Next, now, "ago", "from now")
	}
	return s
}

// Current picks the round to show at now: the one whose window contains now,
// else the next upcoming one, else the most recent. ok is false for no rounds.
func Current(all []api.Round, now time.Time) (api.Round, bool) {
	if len(all) == 0 {
		return api.Round{}, false
	}
	sorted := make([]api.Round, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	for _, r := range sorted {
		switch PhaseAt(r, now) {
		case PhaseBuilding, PhaseAwaitingJudging, PhaseJudging:
			return r, true
		}
	}
	for _, r := range sorted {
		if PhaseAt(r, now) == PhaseUpcoming {
			return r, true
		}
	}
	return sorted[len(sorted)-1], true
}
