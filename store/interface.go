// Package store provides the durable local cache backing the todo
// repository: the last-known todo set plus the queue of mutations that
// have not yet reached the remote store.
package store

import (
	"errors"
	"io/fs"

	"github.com/daybrief/daybrief/models"
)

// CacheStore defines the contract for local, offline-tolerant persistence.
//
// Every method is best-effort by design: implementations swallow and log
// underlying storage failures, degrading to no-ops or empty results. The
// cache is an optimization layered under the repository, and its
// unavailability must never crash a caller.
type CacheStore interface {
	// SaveTodos overwrites the cached todo set.
	SaveTodos(todos []models.Todo)

	// LoadTodos returns the cached todo set, or an empty slice when the
	// cache is absent, corrupt, or unreadable.
	LoadTodos() []models.Todo

	// EnqueueOperation appends one pending operation, stamping it with the
	// current time. The persisted queue is rewritten whole; partial writes
	// are not tolerated.
	EnqueueOperation(op models.PendingOperation)

	// LoadPendingOperations returns the queue in insertion order.
	LoadPendingOperations() []models.PendingOperation

	// RemovePendingOperations deletes the operations matching the given
	// keys (see models.PendingOperation.Key), preserving the order of
	// survivors. Operations enqueued concurrently with a sync pass are
	// unaffected.
	RemovePendingOperations(keys []string)

	// ClearPendingOperations removes the whole queue.
	ClearPendingOperations()

	// ClearAll removes both the todo cache and the queue. Used for full
	// resets, not by the normal sync flow.
	ClearAll()

	// Close releases any resources held by the store.
	Close() error
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// filterOps returns ops minus those whose key appears in keys, preserving
// order. Shared by both store implementations.
func filterOps(ops []models.PendingOperation, keys []string) []models.PendingOperation {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	kept := ops[:0]
	for _, op := range ops {
		if _, gone := drop[op.Key()]; gone {
			continue
		}
		kept = append(kept, op)
	}
	return kept
}
