// Package repository provides storage for secret records. The vault is
// process-scoped by design (persistence is out of scope), so the only
// implementation is an in-memory store; a durable backend is a drop-in
// replacement behind the same interface.
package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/linkseal/linkseal/internal/vault/domain"
)

// MemorySecretRepository stores secret records in a mutex-guarded map keyed by
// public id. Every mutation (insert, delete, attempt increment, lazy eviction)
// is a critical section, so concurrent callers observe a consistent lifecycle:
// once a destroy completes, no later lookup can see the record, and two racing
// attempt increments at the cap resolve with exactly one destruction.
type MemorySecretRepository struct {
	mu      sync.Mutex
	records map[string]*domain.SecretRecord

	logger *slog.Logger
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewMemorySecretRepository creates an in-memory secret store. If
// sweepInterval is positive, a background goroutine evicts expired records on
// that cadence; expiry is enforced lazily on access either way, the sweep only
// reclaims memory for records nobody revisits. Close stops the sweep.
func NewMemorySecretRepository(sweepInterval time.Duration, logger *slog.Logger) *MemorySecretRepository {
	r := &MemorySecretRepository{
		records: make(map[string]*domain.SecretRecord),
		logger:  logger,
		done:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		r.wg.Add(1)
		go r.sweep(sweepInterval)
	}

	return r
}

// Insert stores a new record under its public id.
func (r *MemorySecretRepository) Insert(ctx context.Context, record *domain.SecretRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.PublicID] = record
	return nil
}

// GetActive returns a copy of the record under the public id if it is still
// live at the given instant. An expired record is evicted and reported as
// ErrSecretExpired on that access; every later lookup behaves identically to
// an id that never existed.
func (r *MemorySecretRepository) GetActive(
	ctx context.Context,
	publicID string,
	now time.Time,
) (*domain.SecretRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[publicID]
	if !ok {
		return nil, domain.ErrSecretNotFound
	}

	if record.Expired(now) {
		delete(r.records, publicID)
		return nil, domain.ErrSecretExpired
	}

	copied := *record
	return &copied, nil
}

// Delete removes the record under the public id. Deletion is terminal: the id
// stays dead and is never reused.
func (r *MemorySecretRepository) Delete(ctx context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[publicID]; !ok {
		return domain.ErrSecretNotFound
	}

	delete(r.records, publicID)
	return nil
}

// IncrementAttempts increments the record's attempt counter atomically. When
// the new count reaches the cap the record is deleted in the same critical
// section and ErrSecretDestroyed is returned; otherwise the remaining attempt
// budget is returned. Two concurrent callers at cap-1 cannot both slip past:
// exactly one of them observes the destruction.
func (r *MemorySecretRepository) IncrementAttempts(
	ctx context.Context,
	publicID string,
	cap int,
) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[publicID]
	if !ok {
		return 0, domain.ErrSecretNotFound
	}

	record.Attempts++
	if record.Attempts >= cap {
		delete(r.records, publicID)
		return 0, domain.ErrSecretDestroyed
	}

	return cap - record.Attempts, nil
}

// MarkViewed records that the secret was successfully revealed. Missing
// records are ignored: a destroy racing the reveal may already have won.
func (r *MemorySecretRepository) MarkViewed(ctx context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.records[publicID]; ok {
		record.Viewed = true
	}
	return nil
}

// DeleteExpired evicts every record past its retention window at the given
// instant and returns how many were removed.
func (r *MemorySecretRepository) DeleteExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, record := range r.records {
		if record.Expired(now) {
			delete(r.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live records. Used by tests and metrics.
func (r *MemorySecretRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Close stops the background sweep, if any, and waits for it to finish.
func (r *MemorySecretRepository) Close() {
	close(r.done)
	r.wg.Wait()
}

// sweep periodically evicts expired records until Close is called.
func (r *MemorySecretRepository) sweep(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			if removed := r.DeleteExpired(context.Background(), time.Now().UTC()); removed > 0 {
				r.logger.Debug("swept expired secrets", slog.Int("removed", removed))
			}
		}
	}
}
