package repository

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"sync"
)

const availabilityProbeKey = "__cache_probe__"

// CacheRepository implements CacheStoreInterface over a cache_entries table,
// demoting to an in-process map when the durable store is unavailable or a
// write fails. All writes are whole-value replacements, so the map and the
// table never need partial-field coordination.
type CacheRepository struct {
	db *sql.DB

	mu      sync.Mutex
	mem     map[string]string
	memOnly bool
}

// Ensure CacheRepository implements CacheStoreInterface
var _ CacheStoreInterface = (*CacheRepository)(nil)

// NewCacheRepository creates a CacheRepository. A nil db means the durable
// store was never configured and the repository runs memory-only.
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{
		db:      db,
		mem:     make(map[string]string),
		memOnly: db == nil,
	}
}

// Get returns the stored value for key and whether it was present.
func (r *CacheRepository) Get(ctx context.Context, key string) (string, bool) {
	r.mu.Lock()
	memOnly := r.memOnly
	if v, ok := r.mem[key]; ok && memOnly {
		r.mu.Unlock()
		return v, true
	}
	r.mu.Unlock()

	if memOnly {
		return "", false
	}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM cache_entries WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Printf("⚠️ CacheRepository: durable read failed for %q, falling back to memory: %v", key, err)
		r.mu.Lock()
		r.memOnly = true
		v, ok := r.mem[key]
		r.mu.Unlock()
		return v, ok
	}
	return value, true
}

// Set stores the value for key. A durable-store failure (including quota
// exhaustion) silently demotes the write to the in-memory fallback.
func (r *CacheRepository) Set(ctx context.Context, key, value string) bool {
	r.mu.Lock()
	memOnly := r.memOnly
	r.mu.Unlock()

	if !memOnly {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO cache_entries (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`, key, value)
		if err == nil {
			return true
		}
		log.Printf("⚠️ CacheRepository: durable write failed for %q, demoting to memory: %v", key, err)
		r.mu.Lock()
		r.memOnly = true
		r.mu.Unlock()
	}

	r.mu.Lock()
	r.mem[key] = value
	r.mu.Unlock()
	return true
}

// Remove deletes the key from both the durable store and the fallback.
func (r *CacheRepository) Remove(ctx context.Context, key string) {
	r.mu.Lock()
	delete(r.mem, key)
	memOnly := r.memOnly
	r.mu.Unlock()

	if memOnly {
		return
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, key); err != nil {
		log.Printf("⚠️ CacheRepository: durable remove failed for %q: %v", key, err)
		r.mu.Lock()
		r.memOnly = true
		r.mu.Unlock()
	}
}

// CheckAvailability probes the durable store by writing and removing a
// sentinel key. The probe is re-run on every call rather than cached, so a
// store that comes back mid-session is picked up again.
func (r *CacheRepository) CheckAvailability(ctx context.Context) Availability {
	if r.db == nil {
		return Availability{Available: false}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, updated_at) VALUES ($1, '1', now())
		ON CONFLICT (key) DO UPDATE SET value = '1', updated_at = now()
	`, availabilityProbeKey)
	if err != nil {
		r.mu.Lock()
		r.memOnly = true
		r.mu.Unlock()
		return Availability{Available: false, QuotaExceeded: isQuotaError(err)}
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, availabilityProbeKey); err != nil {
		r.mu.Lock()
		r.memOnly = true
		r.mu.Unlock()
		return Availability{Available: false, QuotaExceeded: isQuotaError(err)}
	}

	r.mu.Lock()
	r.memOnly = false
	r.mu.Unlock()
	return Availability{Available: true}
}

// isQuotaError recognizes storage-full conditions: SQLSTATE 53100 (disk full),
// 53200 (out of memory) or any driver message mentioning quota.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "53100") ||
		strings.Contains(msg, "53200") ||
		strings.Contains(msg, "disk full") ||
		strings.Contains(msg, "quota")
}
