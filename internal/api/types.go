package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is a resource identifier. The backend emits ids as either JSON strings
// or numbers; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// User is a hackathon participant.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Membership links a user to a team.
type Membership struct {
	ID   ID   `json:"id"`
	User User `json:"user"`
}

// Project is a team's submission.
type Project struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Track is the category a project is entered under.
type Track struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Team is a participant group tracked for scoring and elimination.
type Team struct {
	ID           ID           `json:"id"`
	Title        string       `json:"title"`
	Project      *Project     `json:"project,omitempty"`
	Track        *Track       `json:"track,omitempty"`
	IsEliminated bool         `json:"is_eliminated"`
	RoundScore   float64      `json:"round_score"`
	Memberships  []Membership `json:"memberships"`
}

// Round is a timed phase of building and judging.
type Round struct {
	ID               ID        `json:"id"`
	Index            int       `json:"index"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	JudgingStartTime time.Time `json:"judging_start_time"`
	JudgingEndTime   time.Time `json:"judging_end_time"`
}

// GitHubRepo is a repository linked to a team's project.
type GitHubRepo struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Announcement is a message broadcast to hackathon participants.
type Announcement struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
