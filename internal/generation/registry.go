package generation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/llm"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

// DefaultSellerID is used when a caller does not identify its dashboard.
const DefaultSellerID = "default"

const (
	defaultIdleTTL     = 30 * time.Minute
	defaultMaxSessions = 1000
)

type session struct {
	orch     *Orchestrator
	lastUsed time.Time
}

// Registry owns one Orchestrator per seller dashboard session.
// Sessions idle for longer than the idle TTL are evicted, and the number of
// sessions never exceeds the configured maximum.
type Registry struct {
	client      llm.Client
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// RegistryOption is a functional option for Registry.
type RegistryOption func(*Registry)

// WithIdleTTL sets how long an unused session is kept. Zero or less disables idle eviction.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = d }
}

// WithMaxSessions caps the number of live sessions. Zero or less removes the cap.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) { r.maxSessions = n }
}

func withClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(client llm.Client, opts ...RegistryOption) *Registry {
	r := &Registry{
		client:      client,
		idleTTL:     defaultIdleTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For returns the seller's orchestrator, creating a fresh one on first use.
func (r *Registry) For(sellerID string) *Orchestrator {
	if sellerID == "" {
		sellerID = DefaultSellerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	if s, ok := r.sessions[sellerID]; ok {
		s.lastUsed = now
		return s.orch
	}

	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		r.evictOldest()
	}

	orch := New(r.client)
	r.sessions[sellerID] = &session{orch: orch, lastUsed: now}
	utils.Zlog.Debug("Created generation session", zap.String("seller_id", sellerID))
	return orch
}

// Get returns the seller's orchestrator without creating one.
func (r *Registry) Get(sellerID string) (*Orchestrator, bool) {
	if sellerID == "" {
		sellerID = DefaultSellerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	s, ok := r.sessions[sellerID]
	if !ok {
		return nil, false
	}
	s.lastUsed = now
	return s.orch, true
}

// Release ends the seller's session. In-flight calls still complete against
// the released orchestrator; the next For call starts from a clean state.
func (r *Registry) Release(sellerID string) bool {
	if sellerID == "" {
		sellerID = DefaultSellerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sellerID]; !ok {
		return false
	}
	delete(r.sessions, sellerID)
	return true
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// evictIdle drops sessions unused for longer than the idle TTL. Sessions with
// an operation in flight are kept. Callers hold r.mu.
func (r *Registry) evictIdle(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastUsed) > r.idleTTL && !s.orch.Snapshot().Loading {
			delete(r.sessions, id)
			utils.Zlog.Debug("Evicted idle generation session", zap.String("seller_id", id))
		}
	}
}

// evictOldest drops the least recently used session, preferring idle ones.
// Callers hold r.mu.
func (r *Registry) evictOldest() {
	var (
		victim     string
		victimUsed time.Time
		victimBusy bool
	)
	for id, s := range r.sessions {
		busy := s.orch.Snapshot().Loading
		switch {
		case victim == "",
			victimBusy && !busy,
			victimBusy == busy && s.lastUsed.Before(victimUsed):
			victim, victimUsed, victimBusy = id, s.lastUsed, busy
		}
	}
	if victim != "" {
		delete(r.sessions, victim)
		utils.Zlog.Info("Evicted generation session at capacity",
			zap.String("seller_id", victim),
			zap.Int("max_sessions", r.maxSessions))
	}
}
