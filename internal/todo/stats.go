package todo

import "github.com/daybrief/daybrief/models"

// UncategorizedLabel is the category-count key substituted for todos with
// no category.
const UncategorizedLabel = "Uncategorized"

// ComputeStats derives aggregate counts from a todo set. Deterministic,
// no I/O; recomputed on demand and never persisted.
func ComputeStats(todos []models.Todo) models.TodoStats {
	stats := models.TodoStats{
		Total:          len(todos),
		CategoryCounts: make(map[string]int),
	}

	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.Priority == models.PriorityHigh {
				stats.HighPriority++
			}
		}

		category := t.Category
		if category == "" {
			category = UncategorizedLabel
		}
		stats.CategoryCounts[category]++
	}

	// Overdue stays 0 until due-date logic lands.
	return stats
}
