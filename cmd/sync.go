package cmd

import (
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline mutations",
	Long: `Run one reconciliation pass: replay queued offline mutations against
the remote store in order, then refresh the local cache. A pass is
skipped entirely when the remote is unreachable.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	pending := a.cache.LoadPendingOperations()
	cmd.Printf("Pending operations: %d\n", len(pending))

	if err := a.reconciler().Sync(cmd.Context()); err != nil {
		return err
	}

	remaining := a.cache.LoadPendingOperations()
	cmd.Printf("Sync complete; %d operation(s) still pending.\n", len(remaining))
	return nil
}
