package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

// clearCmd represents the clear command.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the local cache and pending queue",
	Long: `Wipe the cached todos and the pending operation queue. Queued offline
mutations that have not synced yet are lost; the remote store is not
touched.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	pending := a.cache.LoadPendingOperations()
	if !clearForce {
		if len(pending) > 0 {
			cmd.Printf("Warning: %d unsynced operation(s) will be lost.\n", len(pending))
		}
		cmd.Print("Clear local cache? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	a.cache.ClearAll()
	cmd.Println("Local cache cleared.")
	return nil
}
