package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daybrief/daybrief/internal/remote"
	"github.com/daybrief/daybrief/models"
)

// fakeRemote is an in-memory stand-in for the Supabase client. online
// toggles transport reachability; rejectIDs simulates definitive server
// rejections for specific todo ids; failIDs simulates transport loss on
// specific ids while the probe itself still succeeds.
type fakeRemote struct {
	mu        sync.Mutex
	online    bool
	rejectIDs map[string]bool
	failIDs   map[string]bool
	todos     []models.Todo
	nextID    int
	pings     int
}

func newFakeRemote(online bool) *fakeRemote {
	return &fakeRemote{
		online:    online,
		rejectIDs: make(map[string]bool),
		failIDs:   make(map[string]bool),
	}
}

// remoteFields is the superset of payload fields the fake understands.
type remoteFields struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Completed   *bool            `json:"completed"`
	Priority    *models.Priority `json:"priority"`
	Category    *string          `json:"category"`
	DueDate     *string          `json:"due_date"`
}

func decodeFields(payload any) (remoteFields, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return remoteFields{}, err
	}
	var f remoteFields
	if err := json.Unmarshal(data, &f); err != nil {
		return remoteFields{}, err
	}
	return f, nil
}

func (f *fakeRemote) unreachable() error {
	return fmt.Errorf("%w: connection refused", remote.ErrUnreachable)
}

func (f *fakeRemote) setOnline(online bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online = online
}

func (f *fakeRemote) Select(ctx context.Context, filters models.TodoFilters) ([]models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online {
		return nil, f.unreachable()
	}

	var result []models.Todo
	for _, t := range f.todos {
		if filters.Category != "" && t.Category != filters.Category {
			continue
		}
		if filters.Priority != "" && string(t.Priority) != filters.Priority {
			continue
		}
		if filters.Completed != nil && t.Completed != *filters.Completed {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeRemote) Insert(ctx context.Context, payload any) (models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online {
		return models.Todo{}, f.unreachable()
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: bad payload: %v", remote.ErrRejected, err)
	}
	if fields.Title == nil || *fields.Title == "" {
		return models.Todo{}, fmt.Errorf("%w: title is required", remote.ErrRejected)
	}

	f.nextID++
	now := time.Now().UTC()
	t := models.Todo{
		ID:        fmt.Sprintf("srv-%d", f.nextID),
		Title:     *fields.Title,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.Priority != nil {
		t.Priority = *fields.Priority
	}
	if fields.Category != nil {
		t.Category = *fields.Category
	}
	if fields.Completed != nil {
		t.Completed = *fields.Completed
	}

	// newest-created-first, like the remote's default ordering
	f.todos = append([]models.Todo{t}, f.todos...)
	return t, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, payload any) (models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online {
		return models.Todo{}, f.unreachable()
	}
	if f.failIDs[id] {
		return models.Todo{}, f.unreachable()
	}
	if f.rejectIDs[id] {
		return models.Todo{}, fmt.Errorf("%w: row level security", remote.ErrRejected)
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: bad payload: %v", remote.ErrRejected, err)
	}

	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if fields.Title != nil {
			f.todos[i].Title = *fields.Title
		}
		if fields.Description != nil {
			f.todos[i].Description = *fields.Description
		}
		if fields.Completed != nil {
			f.todos[i].Completed = *fields.Completed
		}
		if fields.Priority != nil {
			f.todos[i].Priority = *fields.Priority
		}
		if fields.Category != nil {
			f.todos[i].Category = *fields.Category
		}
		f.todos[i].UpdatedAt = time.Now().UTC()
		return f.todos[i], nil
	}
	// PostgREST returns an empty representation for a missing row.
	return models.Todo{}, fmt.Errorf("%w: no row returned", remote.ErrRejected)
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online {
		return f.unreachable()
	}
	if f.failIDs[id] {
		return f.unreachable()
	}

	kept := f.todos[:0]
	for _, t := range f.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.todos = kept
	return nil
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	if !f.online {
		return f.unreachable()
	}
	return nil
}

func (f *fakeRemote) find(id string) *models.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == id {
			return &f.todos[i]
		}
	}
	return nil
}
