package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/models"
)

var (
	listCategory  string
	listPriority  string
	listCompleted string
	listSearch    string
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos, newest first. Reads from the remote store when it is
reachable and falls back to the local cache otherwise.

All filters combine with AND:
  daybrief list --category tennis_coach
  daybrief list --priority high --completed false
  daybrief list --search "court"`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listCategory, "category", "C", "", "filter by life role category id")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high)")
	listCmd.Flags().StringVar(&listCompleted, "completed", "", "filter by completion (true or false)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive substring search in title and description")
}

func runList(cmd *cobra.Command, args []string) error {
	filters := models.TodoFilters{
		Category: listCategory,
		Priority: listPriority,
		Search:   listSearch,
	}
	switch listCompleted {
	case "true":
		v := true
		filters.Completed = &v
	case "false":
		v := false
		filters.Completed = &v
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	todos, stale := a.repo.List(cmd.Context(), filters)

	if len(todos) == 0 {
		cmd.Println("No todos found.")
	}
	for _, t := range todos {
		cmd.Println(formatTodoLine(t))
	}
	if stale {
		cmd.Println("\n(offline: showing cached data; run 'daybrief sync' when back online)")
	}
	return nil
}
