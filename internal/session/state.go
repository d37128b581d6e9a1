package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/edgard/dualcoach/internal/onboarding"
)

// State is what the session is waiting for. The concrete types are Idle,
// Onboarding, ConfirmingReset and UpdatingMeasurements.
type State interface {
	isState()
}

// Idle routes input to menu actions and free-form chat.
type Idle struct{}

// Onboarding hands every input to the onboarding machine.
type Onboarding struct {
	Draft onboarding.Draft
}

// ConfirmingReset waits for the reset confirmation or a cancel.
type ConfirmingReset struct{}

// UpdatingMeasurements waits for four new circumferences.
type UpdatingMeasurements struct{}

func (Idle) isState()                 {}
func (Onboarding) isState()           {}
func (ConfirmingReset) isState()      {}
func (UpdatingMeasurements) isState() {}

// session is the transient state of one identity. sem admits one event at a
// time; state, lastSeen and evicted are only touched while holding it.
type session struct {
	sem      *semaphore.Weighted
	state    State
	lastSeen time.Time
	evicted  bool
}

// registry hands out sessions keyed by identity. Different identities never
// wait on each other.
type registry struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[int64]*session)}
}

// acquire returns the session for id, locked for the caller. release must be
// called when the event is done.
func (r *registry) acquire(ctx context.Context, id int64) (*session, error) {
	for {
		r.mu.Lock()
		s, ok := r.sessions[id]
		if !ok {
			s = &session{sem: semaphore.NewWeighted(1), state: Idle{}}
			r.sessions[id] = s
		}
		r.mu.Unlock()

		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		if !s.evicted {
			return s, nil
		}
		// swept while we were waiting; look up the replacement
		s.sem.Release(1)
	}
}

func (r *registry) release(s *session, now time.Time) {
	s.lastSeen = now
	s.sem.Release(1)
}

// sweep drops idle sessions last used before cutoff and reports how many were
// removed. Sessions busy with an event are skipped.
func (r *registry) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !s.sem.TryAcquire(1) {
			continue
		}
		if s.lastSeen.Before(cutoff) {
			s.evicted = true
			delete(r.sessions, id)
			removed++
		}
		s.sem.Release(1)
	}
	return removed
}

// peek returns the state of id without waiting for a running event.
func (r *registry) peek(id int64) (State, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok || !s.sem.TryAcquire(1) {
		return nil, false
	}
	defer s.sem.Release(1)
	return s.state, true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
