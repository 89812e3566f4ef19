package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type session struct {
	flow     *Flow
	owner    uint
	lastSeen time.Time
}

// Registry owns one Flow per booking session and forgets sessions that sat
// idle longer than ttl.
type Registry struct {
	newFlow func() *Flow
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(newFlow func() *Flow, ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		newFlow:  newFlow,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (r *Registry) Create(owner uint) (string, *Flow) {
	id := uuid.NewString()
	flow := r.newFlow()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = &session{flow: flow, owner: owner, lastSeen: r.now()}
	return id, flow
}

// Get returns the session's flow. Unknown, expired and foreign sessions all
// look the same to the caller.
func (r *Registry) Get(id string, owner uint) (*Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.owner != owner {
		return nil, ErrSessionNotFound
	}

	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}

	s.lastSeen = now
	return s.flow, nil
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("expired booking sessions", zap.Int("count", n))
			}
		}
	}
}

func (r *Registry) expired(s *session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.lastSeen) > r.ttl
}
