package todo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/internal/remote"
	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/store"
)

// DefaultSyncInterval is how often the periodic reconciler fires.
const DefaultSyncInterval = 30 * time.Second

// Reconciler replays queued offline mutations against the remote store and
// resynchronizes the cache with authoritative state afterwards.
//
// Failure handling per operation splits by kind: a transport-level failure
// retains the operation for the next pass (its slot in the FIFO order is
// kept), while a definitive server rejection drops it after logging —
// retrying a payload the server has already refused would wedge the queue
// forever.
type Reconciler struct {
	cache    store.CacheStore
	remote   Remote
	repo     *Repository
	interval time.Duration
	mu       sync.Mutex // single-flight: at most one pass at a time
	log      zerolog.Logger
}

// NewReconciler builds a reconciler. A non-positive interval falls back to
// DefaultSyncInterval.
func NewReconciler(cache store.CacheStore, rem Remote, repo *Repository, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Reconciler{
		cache:    cache,
		remote:   rem,
		repo:     repo,
		interval: interval,
		log:      logging.Component("sync"),
	}
}

// Sync performs one reconciliation pass. If a pass is already running the
// call is skipped — a timer tick and a user-initiated refresh never
// double-replay. A failed reachability probe aborts without touching the
// queue.
func (r *Reconciler) Sync(ctx context.Context) error {
	if !r.mu.TryLock() {
		r.log.Debug().Msg("sync pass already in flight, skipping")
		return nil
	}
	defer r.mu.Unlock()

	if err := r.remote.Ping(ctx); err != nil {
		r.log.Debug().Err(err).Msg("remote unreachable, skipping sync")
		return fmt.Errorf("sync probe: %w", err)
	}

	ops := r.cache.LoadPendingOperations()
	if len(ops) == 0 {
		return nil
	}
	r.log.Info().Int("count", len(ops)).Msg("replaying pending operations")

	var doneKeys []string
	var retained int
	for _, op := range ops {
		err := r.replay(ctx, op)
		switch {
		case err == nil:
			doneKeys = append(doneKeys, op.Key())
		case remote.IsRejected(err):
			r.log.Warn().Err(err).Str("type", string(op.Type)).Str("id", op.ID).
				Msg("operation rejected by server, dropping")
			doneKeys = append(doneKeys, op.Key())
		default:
			retained++
			r.log.Warn().Err(err).Str("type", string(op.Type)).Str("id", op.ID).
				Msg("operation failed, retained for next pass")
		}
	}

	r.cache.RemovePendingOperations(doneKeys)

	if err := r.repo.Reload(ctx); err != nil {
		r.log.Warn().Err(err).Msg("post-sync reload failed")
	}

	r.log.Info().Int("replayed", len(doneKeys)).Int("retained", retained).Msg("sync pass complete")
	return nil
}

// replay applies one queued mutation to the remote store.
func (r *Reconciler) replay(ctx context.Context, op models.PendingOperation) error {
	switch op.Type {
	case models.OpCreate:
		if len(op.Data) == 0 {
			return fmt.Errorf("%w: create operation carries no payload", remote.ErrRejected)
		}
		// The server assigns a fresh id; the temporary id is local-only.
		_, err := r.remote.Insert(ctx, op.Data)
		return err
	case models.OpUpdate:
		if len(op.Data) == 0 {
			return fmt.Errorf("%w: update operation carries no payload", remote.ErrRejected)
		}
		_, err := r.remote.Update(ctx, op.ID, op.Data)
		return err
	case models.OpDelete:
		return r.remote.Delete(ctx, op.ID)
	default:
		return fmt.Errorf("%w: unknown operation type %q", remote.ErrRejected, op.Type)
	}
}

// Run performs an immediate pass and then one per interval until the
// context is cancelled. Errors are absorbed; the next tick retries.
func (r *Reconciler) Run(ctx context.Context) {
	_ = r.Sync(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = r.Sync(ctx)
		}
	}
}
