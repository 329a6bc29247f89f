// internal/session/registry.go
//
// Registry of live game sessions, keyed by session ID.
// Used for bookkeeping and diagnostics only: each connection handler owns
// its *game.Session outright and publishes value snapshots here, so no game
// state is ever shared between goroutines.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries are copied in and out; callers never hold references into the map.
//   - State is lost when the process restarts.

package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
)

// ErrNotFound is returned by Get and Update for unknown IDs.
var ErrNotFound = errors.New("session not found")

// Entry is a point-in-time view of one live session.
type Entry struct {
	ID          string       `json:"id"`
	Remote      string       `json:"remote"`
	StartedAt   time.Time    `json:"startedAt"`
	Attempts    int          `json:"attempts"`
	MaxAttempts int          `json:"maxAttempts"`
	Outcome     game.Outcome `json:"outcome"`
}

// EntryFor builds an Entry from a session owned by the caller.
func EntryFor(id, remote string, s *game.Session) Entry {
	return Entry{
		ID:          id,
		Remote:      remote,
		StartedAt:   s.StartedAt(),
		Attempts:    s.Attempts(),
		MaxAttempts: s.MaxAttempts(),
		Outcome:     s.Outcome(),
	}
}

// Registry is a map-based, mutex-guarded set of live sessions.
type Registry struct {
	mu      sync.RWMutex     // guards entries
	entries map[string]Entry // keyed by Entry.ID
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds or replaces e.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e
}

// Update overwrites an existing entry. It does not resurrect entries that
// were already deregistered.
func (r *Registry) Update(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.ID]; !ok {
		return ErrNotFound
	}
	r.entries[e.ID] = e
	return nil
}

// Deregister removes id. Removing an unknown id is a no-op.
func (r *Registry) Deregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	return Entry{}, ErrNotFound
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of all entries ordered by start time, then ID.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
