package tenant

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/database"
)

var ErrUnknownTenant = errors.New("unknown tenant")

// Router resolves a tenant identifier to that tenant's isolated database
// handle. Repositories call DB with an explicit tenant id on every
// operation; a handle resolved for one tenant is never handed out for
// another. Handles are opened lazily and cached per tenant id only.
type Router struct {
	defaultTenant string
	defaultDB     *sqlx.DB
	dsns          map[string]string

	mu      sync.RWMutex
	handles map[string]*sqlx.DB

	// open is swappable for tests.
	open func(dsn string) (*sqlx.DB, error)
}

// NewRouter builds a router over the primary handle and a map of
// per-tenant DSNs. The default tenant (and the empty tenant id) resolve to
// the primary handle.
func NewRouter(defaultTenant string, defaultDB *sqlx.DB, dsns map[string]string) *Router {
	return &Router{
		defaultTenant: defaultTenant,
		defaultDB:     defaultDB,
		dsns:          dsns,
		handles:       make(map[string]*sqlx.DB),
		open:          database.OpenDSN,
	}
}

// DB returns the database handle for the given tenant id.
func (r *Router) DB(tenantID string) (*sqlx.DB, error) {
	if tenantID == "" || tenantID == r.defaultTenant {
		return r.defaultDB, nil
	}

	r.mu.RLock()
	db, ok := r.handles[tenantID]
	r.mu.RUnlock()
	if ok {
		return db, nil
	}

	dsn, ok := r.dsns[tenantID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTenant, tenantID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if db, ok := r.handles[tenantID]; ok {
		return db, nil
	}
	db, err := r.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant database %s: %w", tenantID, err)
	}
	r.handles[tenantID] = db
	return db, nil
}

// Register installs an already opened handle for a tenant. Used by tests
// and by setups where tenant pools are established ahead of time.
func (r *Router) Register(tenantID string, db *sqlx.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[tenantID] = db
}

// Close closes all tenant handles except the primary one, which is owned
// by the caller.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, db := range r.handles {
		db.Close()
		delete(r.handles, id)
	}
}
