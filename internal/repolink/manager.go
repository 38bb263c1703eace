package repolink

import (
	"context"
	"fmt"
	"sync"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/notify"
)

const (
	// LoadFailedMessage is shown when loading connections fails without a message.
	LoadFailedMessage = "Failed to load linked repositories"
	// DeleteFailedMessage is shown when a delete fails without a message.
	DeleteFailedMessage = "Failed to delete repository"
)

// Connector is the slice of the API the manager needs. *api.Client satisfies it.
type Connector interface {
	Connections(ctx context.Context, teamID string) ([]api.GitHubRepo, error)
	DeleteGitHubRepo(ctx context.Context, teamID, repoID, projectID string) error
}

// Manager holds the repositories linked to one team's project.
type Manager struct {
	conn      Connector
	teamID    string
	projectID string
	notifier  notify.Notifier

	mu    sync.Mutex
	repos []api.GitHubRepo
}

// NewManager creates a manager for a team. projectID is required for deletes.
func NewManager(conn Connector, teamID, projectID string, n notify.Notifier) *Manager {
	if n == nil {
		n = notify.Discard
	}
	return &Manager{conn: conn, teamID: teamID, projectID: projectID, notifier: n}
}

// Load replaces the held list with the team's current connections. On
// failure the held list is unchanged.
func (m *Manager) Load(ctx context.Context) error {
	repos, err := m.conn.Connections(ctx, m.teamID)
	if err != nil {
		m.notifier.Notify(notify.Error(api.MessageOr(err, LoadFailedMessage)))
		return fmt.Errorf("loading connections for team %s: %w", m.teamID, err)
	}

	m.mu.Lock()
	m.repos = repos
	m.mu.Unlock()
	return nil
}

// Delete unlinks repoID with a single request and, on success, removes
// exactly the held entry with that id.
func (m *Manager) Delete(ctx context.Context, repoID string) error {
	if err := m.conn.DeleteGitHubRepo(ctx, m.teamID, repoID, m.projectID); err != nil {
		m.notifier.Notify(notify.Error(api.MessageOr(err, DeleteFailedMessage)))
		return fmt.Errorf("deleting repository %s: %w", repoID, err)
	}

	m.mu.Lock()
	kept := m.repos[:0:0]
	for _, r := range m.repos {
		if string(r.ID) != repoID {
			kept = append(kept, r)
		}
	}
	m.repos = kept
	m.mu.Unlock()

	m.notifier.Notify(notify.Success("Repository removed"))
	return nil
}

// Repos returns a copy of the held list.
func (m *Manager) Repos() []api.GitHubRepo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.GitHubRepo, len(m.repos))
	copy(out, m.repos)
	return out
}
