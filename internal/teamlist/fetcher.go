package teamlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/notify"
	"go.uber.org/zap"
)

// FirstPage is the page number that replaces, rather than extends, the list.
const FirstPage = 1

// FetchFailedMessage is shown when a failed fetch carries no server message.
const FetchFailedMessage = "Failed to fetch teams"

var (
	// ErrSuperseded is returned by a fetch that was cancelled because a newer
	// fetch started. Its response, if any, was discarded.
	ErrSuperseded = errors.New("team fetch superseded by a newer request")

	// ErrExhausted is returned by Next once the listing has no more pages.
	ErrExhausted = errors.New("no more teams")
)

// Lister fetches one page of teams. *api.Client satisfies it.
type Lister interface {
	ListTeams(ctx context.Context, q api.TeamQuery) ([]api.Team, error)
}

// Result describes the held list after a successful fetch.
type Result struct {
	Page    int
	Added   int
	Total   int
	HasMore bool
}

// Fetcher holds the accumulated team list. It is safe for concurrent use;
// only the most recently started fetch may change its state.
type Fetcher struct {
	lister   Lister
	notifier notify.Notifier
	log      *zap.Logger

	mu      sync.Mutex
	teams   []api.Team
	seen    map[api.ID]struct{}
	hasMore bool
	page    int
	filter  Filter
	gen     uint64
	cancel  context.CancelFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithNotifier sets where fetch failures are reported.
func WithNotifier(n notify.Notifier) Option {
	return func(f *Fetcher) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates an empty Fetcher.
func New(lister Lister, opts ...Option) *Fetcher {
	f := &Fetcher{
		lister:   lister,
		notifier: notify.Discard,
		log:      zap.NewNop(),
		seen:     make(map[api.ID]struct{}),
		hasMore:  true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch requests one page under filter. Page FirstPage (or lower) replaces the
// held list; later pages append teams not already held, and a page that adds
// nothing marks the listing exhausted. Any fetch still in flight is cancelled
// and returns ErrSuperseded. On failure the held list is left unchanged and the
// failure is reported to the notifier.
func (f *Fetcher) Fetch(ctx context.Context, page int, filter Filter) (Result, error) {
	if page < FirstPage {
		page = FirstPage
	}

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	f.log.Debug("fetching teams", zap.Int("page", page), zap.String("search", filter.Search),
		zap.String("track", filter.TrackID), zap.Stringer("eliminated", filter.Elimination))

	items, err := f.lister.ListTeams(fetchCtx, filter.Query(page))

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.log.Debug("discarding superseded team fetch", zap.Int("page", page))
		return Result{}, ErrSuperseded
	}
	f.cancel = nil

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if err != nil {
		f.notifier.Notify(notify.Error(api.MessageOr(err, FetchFailedMessage)))
		return Result{}, fmt.Errorf("fetching teams page %d: %w", page, err)
	}

	added := 0
	if page == FirstPage {
		f.teams = f.teams[:0:0]
		f.seen = make(map[api.ID]struct{}, len(items))
		added = f.appendUnseen(items)
		f.hasMore = added > 0
	} else {
		added = f.appendUnseen(items)
		if added == 0 {
			f.hasMore = false
		}
	}
	f.page = page
	f.filter = filter

	return Result{Page: page, Added: added, Total: len(f.teams), HasMore: f.hasMore}, nil
}

// appendUnseen appends items whose id is not already held and returns how
// many were added. Teams without an id are always appended. Callers hold mu.
func (f *Fetcher) appendUnseen(items []api.Team) int {
	added := 0
	for _, t := range items {
		if t.ID != "" {
			if _, ok := f.seen[t.ID]; ok {
				continue
			}
			f.seen[t.ID] = struct{}{}
		}
		f.teams = append(f.teams, t)
		added++
	}
	return added
}

// Apply starts over from the first page under a new filter.
func (f *Fetcher) Apply(ctx context.Context, filter Filter) (Result, error) {
	return f.Fetch(ctx, FirstPage, filter)
}

// Next fetches the page after the last accepted one, under the same filter.
// It returns ErrExhausted without issuing a request once no pages remain.
func (f *Fetcher) Next(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if !f.hasMore {
		f.mu.Unlock()
		return Result{}, ErrExhausted
	}
	page := f.page + 1
	filter := f.filter
	f.mu.Unlock()

	return f.Fetch(ctx, page, filter)
}

// FetchAll applies filter and keeps fetching until the listing is exhausted
// or maxPages pages were read (maxPages <= 0 means no limit).
func (f *Fetcher) FetchAll(ctx context.Context, filter Filter, maxPages int) ([]api.Team, error) {
	if _, err := f.Apply(ctx, filter); err != nil {
		return nil, err
	}
	for pages := 1; maxPages <= 0 || pages < maxPages; pages++ {
		if _, err := f.Next(ctx); err != nil {
			if errors.Is(err, ErrExhausted) {
				break
			}
			return nil, err
		}
	}
	return f.Teams(), nil
}

// Teams returns a copy of the held list.
func (f *Fetcher) Teams() []api.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Team, len(f.teams))
	copy(out, f.teams)
	return out
}

// HasMore reports whether another page may hold new teams.
func (f *Fetcher) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Page returns the last page accepted, or 0 before the first fetch.
func (f *Fetcher) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Filter returns the filter of the last accepted fetch.
func (f *Fetcher) Filter() Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}
