package cmd

import (
	"github.com/spf13/cobra"
)

// rmCmd represents the rm command.
var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Long: `Delete a todo by id. The deletion always succeeds locally; when the
remote is unreachable it is queued and replayed on the next sync.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.repo.Remove(cmd.Context(), args[0])
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
