package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/internal/remote"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow remote changes and sync continuously",
	Long: `Subscribe to the remote realtime channel and keep the local cache
hot: any insert, update, or delete on the todos table triggers a cache
refresh, and the background reconciler replays queued offline work on
its interval. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := a.client.Subscribe(ctx, "todos", func(ev remote.ChangeEvent) {
		cmd.Printf("remote change: %s on %s\n", ev.Kind, ev.Table)
		if err := a.repo.Reload(ctx); err != nil {
			cmd.PrintErrf("refresh after change failed: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = listener.Close() }()

	cmd.Println("Watching for remote changes (Ctrl-C to stop)...")
	a.reconciler().Run(ctx)
	return nil
}
