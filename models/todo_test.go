package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidateCreateInput(t *testing.T) {
	cases := []struct {
		name    string
		input   CreateTodoInput
		wantErr bool
	}{
		{"valid minimal", CreateTodoInput{Title: "Call mom"}, false},
		{"valid full", CreateTodoInput{Title: "Plan lesson", Priority: PriorityHigh, Category: "tennis_coach"}, false},
		{"empty title", CreateTodoInput{Title: ""}, true},
		{"blank title", CreateTodoInput{Title: "   "}, true},
		{"bad priority", CreateTodoInput{Title: "x", Priority: "urgent"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(%+v) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateInputApply(t *testing.T) {
	todo := Todo{ID: "1", Title: "Old", Description: "keep", Priority: PriorityMedium}

	title := "New"
	completed := true
	in := UpdateTodoInput{Title: &title, Completed: &completed}
	in.Apply(&todo)

	if todo.Title != "New" {
		t.Errorf("Title = %q, want %q", todo.Title, "New")
	}
	if !todo.Completed {
		t.Error("Completed should be true after apply")
	}
	if todo.Description != "keep" {
		t.Errorf("Description changed unexpectedly: %q", todo.Description)
	}
	if todo.Priority != PriorityMedium {
		t.Errorf("Priority changed unexpectedly: %q", todo.Priority)
	}
}

func TestUpdateInputPatchJSON(t *testing.T) {
	completed := false
	in := UpdateTodoInput{Completed: &completed}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal patch: %v", err)
	}
	// A false pointer value must still appear in the patch; omitting it
	// would make un-completing a todo impossible over the wire.
	if string(data) != `{"completed":false}` {
		t.Errorf("patch JSON = %s, want {\"completed\":false}", data)
	}
}

func TestNewTodoDefaults(t *testing.T) {
	todo := NewTodo("temp_1", CreateTodoInput{Title: "A"})

	if todo.Priority != PriorityMedium {
		t.Errorf("default priority = %q, want medium", todo.Priority)
	}
	if todo.Completed {
		t.Error("new todo should not be completed")
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestPendingOperationKey(t *testing.T) {
	ts := time.Now()
	a := PendingOperation{ID: "x", Type: OpUpdate, Timestamp: ts}
	b := PendingOperation{ID: "x", Type: OpUpdate, Timestamp: ts.Add(time.Millisecond)}

	if a.Key() == b.Key() {
		t.Error("operations enqueued at different times must have distinct keys")
	}
}

func TestLifeRoleLookup(t *testing.T) {
	if _, ok := LifeRoleByID("family"); !ok {
		t.Error("family role should exist")
	}
	if got := LifeRoleLabel("does_not_exist"); got != "Other" {
		t.Errorf("unknown role label = %q, want Other", got)
	}
}
