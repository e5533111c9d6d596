package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fairway/fairway-api/internal/domain/booking"
	"github.com/fairway/fairway-api/internal/domain/catalog"
)

const (
	defaultIdleTTL       = 30 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

// Session bundles the per-member server-side state: the catalog engine
// and the booking flow.
type Session struct {
	MemberKey int64
	Engine    *catalog.Engine
	Flow      *booking.Flow

	lastSeen time.Time
}

// RegistryOptions configures the session registry.
type RegistryOptions struct {
	PageSize  int
	LoadDelay time.Duration
	IdleTTL   time.Duration
}

// Registry owns all live member sessions. Each member gets exactly one
// session; idle sessions are swept after the idle TTL. The registry is
// what the catalog and booking handlers see behind their provider
// interfaces.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	pageSize  int
	loadDelay time.Duration
	idleTTL   time.Duration

	catalogService *catalog.Service

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a session registry. The catalog service restores
// each member's persisted region filters when their session is created;
// it may be nil.
func NewRegistry(catalogService *catalog.Service, opts RegistryOptions) *Registry {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultIdleTTL
	}
	return &Registry{
		sessions:       make(map[int64]*Session),
		pageSize:       opts.PageSize,
		loadDelay:      opts.LoadDelay,
		idleTTL:        opts.IdleTTL,
		catalogService: catalogService,
		stop:           make(chan struct{}),
	}
}

// GetOrCreate returns the member's session, creating it on first touch.
func (r *Registry) GetOrCreate(memberKey int64) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[memberKey]; ok {
		s.lastSeen = time.Now()
		r.mu.Unlock()
		return s
	}
	r.mu.Unlock()

	// Restore persisted region filters outside the lock; the fetch may
	// hit redis.
	var regions []string
	if r.catalogService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		loaded, err := r.catalogService.LoadRegions(ctx, memberKey)
		cancel()
		if err != nil {
			log.Warn().Err(err).Int64("member_key", memberKey).Msg("Failed to restore region filters")
		} else {
			regions = loaded
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check: another request may have created it meanwhile.
	if s, ok := r.sessions[memberKey]; ok {
		s.lastSeen = time.Now()
		return s
	}

	s := &Session{
		MemberKey: memberKey,
		Engine: catalog.NewEngine(catalog.Options{
			PageSize:       r.pageSize,
			LoadDelay:      r.loadDelay,
			InitialRegions: regions,
		}),
		Flow:     booking.NewFlow(),
		lastSeen: time.Now(),
	}
	r.sessions[memberKey] = s
	return s
}

// EngineFor implements catalog.EngineProvider.
func (r *Registry) EngineFor(memberKey int64) *catalog.Engine {
	return r.GetOrCreate(memberKey).Engine
}

// FlowFor implements booking.SessionProvider.
func (r *Registry) FlowFor(memberKey int64) *booking.Flow {
	return r.GetOrCreate(memberKey).Flow
}

// Remove drops a member's session, e.g. on logout.
func (r *Registry) Remove(memberKey int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, memberKey)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartSweeper launches the background janitor that drops idle sessions.
func (r *Registry) StartSweeper() {
	go func() {
		ticker := time.NewTicker(defaultSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stop:
				return
			}
		}
	}()
}

// Close stops the sweeper.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweep() {
	cutoff := time.Now().Add(-r.idleTTL)

	r.mu.Lock()
	removed := 0
	for key, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, key)
			removed++
		}
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", remaining).Msg("Swept idle sessions")
	}
}
