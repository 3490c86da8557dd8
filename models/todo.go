// Package models defines the core entities shared across the daybrief
// application: todos, the inputs that mutate them, filter and stat shapes,
// and the pending-operation record used by offline sync.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Priority represents the priority levels of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Todo represents a single task record. JSON field names are the Supabase
// column names, so the same struct travels over the wire and into the local
// cache unchanged.
type Todo struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority" validate:"required,oneof=low medium high"`
	Category    string    `json:"category,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      string    `json:"user_id,omitempty"`
}

// CreateTodoInput carries the caller-supplied fields for a new todo.
// Title must survive trimming; the command layer validates before the
// repository ever sees the input.
type CreateTodoInput struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category    string   `json:"category,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

// UpdateTodoInput is a partial patch. Nil pointers mean "leave unchanged",
// which also makes the JSON encoding of the patch minimal for PostgREST.
type UpdateTodoInput struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category    *string   `json:"category,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

// Apply patches t in place with every non-nil field of the input.
func (in UpdateTodoInput) Apply(t *Todo) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
}

// TodoFilters narrows a listing. Zero values mean "match all" for that
// dimension; Completed is a pointer so "only incomplete" is expressible.
type TodoFilters struct {
	Category  string
	Priority  string
	Completed *bool
	Search    string
}

// TodoStats is derived on demand from a todo set and never persisted.
type TodoStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	HighPriority   int            `json:"highPriority"`
	Overdue        int            `json:"overdue"` // reserved, always 0 until due-date logic lands
	CategoryCounts map[string]int `json:"categoryCounts"`
}

// OpType enumerates the kinds of queued mutations.
type OpType string

const (
	OpCreate OpType = "create"
	OpUpdate OpType = "update"
	OpDelete OpType = "delete"
)

// PendingOperation is one not-yet-confirmed mutation awaiting replay
// against the remote store. ID is the affected todo's id (temporary or
// real); Data holds the original payload verbatim so replay sends exactly
// what the caller asked for.
type PendingOperation struct {
	ID        string          `json:"id"`
	Type      OpType          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Key identifies an operation within the queue for selective removal.
// Task ids repeat across operations, so the enqueue timestamp is part of
// the identity.
func (op PendingOperation) Key() string {
	return fmt.Sprintf("%s|%s|%d", op.Type, op.ID, op.Timestamp.UnixNano())
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// "required" alone accepts all-whitespace titles; notblank does not.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct performs validation on any struct carrying validate tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// NewTodo builds a full local todo record from a create input, used when
// the remote store is unreachable and the record must be synthesized
// client-side with local timestamps.
func NewTodo(id string, in CreateTodoInput) Todo {
	now := time.Now().UTC()
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return Todo{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		Priority:    priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
