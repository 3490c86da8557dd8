package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/internal/todo"
	"github.com/daybrief/daybrief/models"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateCategory    string
	updateDueDate     string
)

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a todo",
	Long: `Update a todo by id. Only the flags you pass change; everything else
is left as-is. Offline updates patch the cache and are queued for sync.

Example:
  daybrief update 42 --title "Restring racket" --priority high`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high)")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "C", "", "new life role category id")
	updateCmd.Flags().StringVar(&updateDueDate, "due", "", "new due date (YYYY-MM-DD)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var in models.UpdateTodoInput
	if cmd.Flags().Changed("title") {
		in.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		in.Description = &updateDescription
	}
	if cmd.Flags().Changed("priority") {
		p := models.Priority(updatePriority)
		in.Priority = &p
	}
	if cmd.Flags().Changed("category") {
		in.Category = &updateCategory
	}
	if cmd.Flags().Changed("due") {
		in.DueDate = &updateDueDate
	}
	if in == (models.UpdateTodoInput{}) {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}
	if err := models.ValidateStruct(in); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	updated, err := a.repo.Update(cmd.Context(), args[0], in)
	if errors.Is(err, todo.ErrNotFound) {
		return fmt.Errorf("no todo with id %s", args[0])
	}
	if err != nil {
		return err
	}
	cmd.Println(formatTodoLine(*updated))
	return nil
}
