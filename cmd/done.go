package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/internal/todo"
)

// doneCmd represents the done command.
var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a todo's completion",
	Long: `Toggle completion of a todo by id. Running it on a completed todo
reopens it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	toggled, err := a.repo.ToggleComplete(cmd.Context(), args[0])
	if errors.Is(err, todo.ErrNotFound) {
		return fmt.Errorf("no todo with id %s", args[0])
	}
	if err != nil {
		return err
	}
	cmd.Println(formatTodoLine(*toggled))
	return nil
}
