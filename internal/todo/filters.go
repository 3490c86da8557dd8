package todo

import (
	"strings"

	"github.com/daybrief/daybrief/models"
)

// ApplyFilters returns the todos matching every provided filter field
// (AND semantics). Absent fields match everything. Pure: the input slice
// is never mutated and the result order follows the input.
func ApplyFilters(todos []models.Todo, f models.TodoFilters) []models.Todo {
	result := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if Matches(t, f) {
			result = append(result, t)
		}
	}
	return result
}

// Matches reports whether a single todo passes the filter.
func Matches(t models.Todo, f models.TodoFilters) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && string(t.Priority) != f.Priority {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		title := strings.ToLower(t.Title)
		description := strings.ToLower(t.Description)
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}
	return true
}
