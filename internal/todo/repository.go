// Package todo contains the synchronization core: the repository that
// fronts all reads and writes, the pure filter/stat derivations, and the
// reconciler that replays queued offline mutations.
package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/store"
)

// ErrNotFound is returned by operations that depend on current local state
// when the target id is absent from the cache.
var ErrNotFound = errors.New("todo not found")

// Remote is the slice of the remote task store the repository needs.
// *remote.Client satisfies it; tests substitute fakes.
type Remote interface {
	Select(ctx context.Context, f models.TodoFilters) ([]models.Todo, error)
	Insert(ctx context.Context, payload any) (models.Todo, error)
	Update(ctx context.Context, id string, payload any) (models.Todo, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Repository is the single read/write surface over the remote store and
// the local cache. It owns the optimistic-update policy: remote first,
// cache fallback on reads, queue-and-apply on writes. Connectivity loss is
// absorbed here and never surfaces as a hard failure.
type Repository struct {
	cache  store.CacheStore
	remote Remote
	log    zerolog.Logger
}

// NewRepository wires a repository over its two collaborators.
func NewRepository(cache store.CacheStore, remote Remote) *Repository {
	return &Repository{
		cache:  cache,
		remote: remote,
		log:    logging.Component("repo"),
	}
}

// createPayload is what travels to the remote on insert: the caller's
// input plus the fields the original request shape carries explicitly.
type createPayload struct {
	models.CreateTodoInput
	Completed bool `json:"completed"`
}

// updatePayload is an update patch plus the refreshed updated_at.
type updatePayload struct {
	models.UpdateTodoInput
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns todos matching the filters. The remote result refreshes the
// cache; when the remote is unreachable the last-cached set is filtered
// client-side instead. The second return value reports whether the result
// was served from the cache, letting the caller surface a staleness
// advisory. List never fails: worst case is an empty slice.
func (r *Repository) List(ctx context.Context, f models.TodoFilters) ([]models.Todo, bool) {
	todos, err := r.remote.Select(ctx, f)
	if err != nil {
		r.log.Warn().Err(err).Msg("remote list failed, falling back to cache")
		return ApplyFilters(r.cache.LoadTodos(), f), true
	}

	r.cache.SaveTodos(todos)
	// The server handled category/priority/completed; running the full
	// predicate again is idempotent and also covers search.
	return ApplyFilters(todos, f), false
}

// Create inserts a new todo. When the remote is unreachable the create is
// queued and a synthesized record with a temporary id is returned —
// connectivity loss must never block task capture, so this path is not
// reported as a failure.
//
// Title validation is the caller's contract; input reaching this method is
// assumed validated.
func (r *Repository) Create(ctx context.Context, in models.CreateTodoInput) models.Todo {
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	payload := createPayload{CreateTodoInput: in, Completed: false}

	created, err := r.remote.Insert(ctx, payload)
	if err == nil {
		r.prepend(created)
		r.log.Info().Str("id", created.ID).Msg("todo created")
		return created
	}

	r.log.Warn().Err(err).Msg("remote create failed, queuing for sync")

	tempID := newTempID()
	data, merr := json.Marshal(payload)
	if merr != nil {
		// Marshalling a plain struct cannot realistically fail; guard anyway.
		r.log.Error().Err(merr).Msg("failed to encode create payload")
		data = nil
	}
	r.cache.EnqueueOperation(models.PendingOperation{ID: tempID, Type: models.OpCreate, Data: data})

	optimistic := models.NewTodo(tempID, in)
	r.prepend(optimistic)
	return optimistic
}

// Update patches an existing todo. On remote failure the patch is queued
// and applied to the cached entry; a nil result with ErrNotFound means the
// id is unknown locally and nothing was applied to the cache (the queued
// patch still replays later, best-effort).
func (r *Repository) Update(ctx context.Context, id string, in models.UpdateTodoInput) (*models.Todo, error) {
	payload := updatePayload{UpdateTodoInput: in, UpdatedAt: time.Now().UTC()}

	updated, err := r.remote.Update(ctx, id, payload)
	if err == nil {
		r.replace(updated)
		r.log.Info().Str("id", id).Msg("todo updated")
		return &updated, nil
	}

	r.log.Warn().Err(err).Str("id", id).Msg("remote update failed, queuing for sync")

	data, merr := json.Marshal(payload)
	if merr != nil {
		r.log.Error().Err(merr).Msg("failed to encode update payload")
	}
	r.cache.EnqueueOperation(models.PendingOperation{ID: id, Type: models.OpUpdate, Data: data})

	todos := r.cache.LoadTodos()
	for i := range todos {
		if todos[i].ID == id {
			in.Apply(&todos[i])
			todos[i].UpdatedAt = payload.UpdatedAt
			r.cache.SaveTodos(todos)
			result := todos[i]
			return &result, nil
		}
	}
	return nil, fmt.Errorf("update %s: %w", id, ErrNotFound)
}

// Remove deletes a todo. Once the delete is either confirmed or queued,
// the local view no longer contains the id, so the operation always
// reports success: the user's intent is locally authoritative.
func (r *Repository) Remove(ctx context.Context, id string) bool {
	if err := r.remote.Delete(ctx, id); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("remote delete failed, queuing for sync")
		r.cache.EnqueueOperation(models.PendingOperation{ID: id, Type: models.OpDelete})
	} else {
		r.log.Info().Str("id", id).Msg("todo deleted")
	}
	r.removeFromCache(id)
	return true
}

// ToggleComplete flips the completed flag. The current state is read from
// the cache, not the remote — a deliberate availability-over-freshness
// choice that avoids a round trip and works offline. Under rapid
// cross-device toggling the last local view, not the freshest remote view,
// determines the new state. An id missing from the cache fails closed:
// ErrNotFound, no write, no queued operation.
func (r *Repository) ToggleComplete(ctx context.Context, id string) (*models.Todo, error) {
	var current *models.Todo
	for _, t := range r.cache.LoadTodos() {
		if t.ID == id {
			current = &t
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}

	completed := !current.Completed
	return r.Update(ctx, id, models.UpdateTodoInput{Completed: &completed})
}

// Stats lists the full set (same remote/cache fallback as List) and
// derives the aggregate counts.
func (r *Repository) Stats(ctx context.Context) models.TodoStats {
	todos, _ := r.List(ctx, models.TodoFilters{})
	return ComputeStats(todos)
}

// Reload fetches the authoritative full set and overwrites the cache,
// discarding any optimistic state. Used after reconciliation and on
// realtime change notifications.
func (r *Repository) Reload(ctx context.Context) error {
	todos, err := r.remote.Select(ctx, models.TodoFilters{})
	if err != nil {
		return fmt.Errorf("reload todos: %w", err)
	}
	r.cache.SaveTodos(todos)
	r.log.Debug().Int("count", len(todos)).Msg("cache resynchronized from remote")
	return nil
}

// ClearLocal wipes the cache and the pending queue. Queued mutations are
// lost; this is a full reset, not part of normal flow.
func (r *Repository) ClearLocal() {
	r.cache.ClearAll()
}

func (r *Repository) prepend(t models.Todo) {
	todos := r.cache.LoadTodos()
	r.cache.SaveTodos(append([]models.Todo{t}, todos...))
}

func (r *Repository) replace(t models.Todo) {
	todos := r.cache.LoadTodos()
	for i := range todos {
		if todos[i].ID == t.ID {
			todos[i] = t
			r.cache.SaveTodos(todos)
			return
		}
	}
}

func (r *Repository) removeFromCache(id string) {
	todos := r.cache.LoadTodos()
	kept := todos[:0]
	for _, t := range todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.cache.SaveTodos(kept)
}

// newTempID synthesizes a local id for a todo created while the remote is
// unreachable. The time component keeps the original's prefixed shape; the
// uuid suffix prevents same-millisecond collisions.
func newTempID() string {
	return fmt.Sprintf("temp_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
