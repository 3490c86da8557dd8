package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/models"
)

var (
	addDescription string
	addPriority    string
	addCategory    string
	addDueDate     string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new todo",
	Long: `Add a new todo. The todo is written to the remote store when it is
reachable; otherwise it is cached locally with a temporary id and queued
for the next sync.

Examples:
  daybrief add "Book court for Saturday" --category tennis_coach --priority high
  daybrief add "Call mum" -C family --due 2026-09-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "longer description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addCategory, "category", "C", "", "life role category id (see 'daybrief roles')")
	addCmd.Flags().StringVar(&addDueDate, "due", "", "due date (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	in := models.CreateTodoInput{
		Title:       strings.TrimSpace(strings.Join(args, " ")),
		Description: addDescription,
		Priority:    models.Priority(addPriority),
		Category:    addCategory,
		DueDate:     addDueDate,
	}
	if err := models.ValidateStruct(in); err != nil {
		return fmt.Errorf("invalid todo: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	created := a.repo.Create(cmd.Context(), in)
	cmd.Println(formatTodoLine(created))
	if strings.HasPrefix(created.ID, "temp_") {
		cmd.Println("Saved locally; will sync when the remote is reachable.")
	}
	return nil
}
