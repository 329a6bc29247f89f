package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	t0 := time.Now()

	r.Register(Entry{ID: "b", StartedAt: t0.Add(time.Second), Outcome: game.InProgress})
	r.Register(Entry{ID: "a", StartedAt: t0, Outcome: game.InProgress})
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.Update(Entry{ID: "a", StartedAt: t0, Attempts: 2, Outcome: game.InProgress}))
	e, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Attempts)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)

	r.Deregister("a")
	r.Deregister("missing")
	_, err = r.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Update(Entry{ID: "a"}), ErrNotFound)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(Entry{ID: "x", Attempts: 1})

	snap := r.Snapshot()
	snap[0].Attempts = 99

	e, err := r.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Attempts)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			r.Register(Entry{ID: id})
			for n := 1; n <= 5; n++ {
				_ = r.Update(Entry{ID: id, Attempts: n})
				_ = r.Snapshot()
			}
			r.Deregister(id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func TestEntryFor(t *testing.T) {
	d := stubDict{}
	s := game.NewWithAnswer(d, "crane", 4)
	_, _, err := s.Evaluate("slate")
	require.NoError(t, err)

	e := EntryFor("id-1", "127.0.0.1:5000", s)
	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, "127.0.0.1:5000", e.Remote)
	assert.Equal(t, 1, e.Attempts)
	assert.Equal(t, 4, e.MaxAttempts)
	assert.Equal(t, game.InProgress, e.Outcome)
	assert.Equal(t, s.StartedAt(), e.StartedAt)
}

type stubDict struct{}

func (stubDict) IsGuess(string) bool   { return true }
func (stubDict) RandomAnswer() string { return "crane" }
