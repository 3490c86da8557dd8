package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/internal/todo"
	"github.com/daybrief/daybrief/models"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo statistics",
	Long:  `Show totals, completion counts, and a per-life-role breakdown.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	stats := a.repo.Stats(cmd.Context())

	cmd.Printf("Total:          %d\n", stats.Total)
	cmd.Printf("Completed:      %d\n", stats.Completed)
	cmd.Printf("Pending:        %d\n", stats.Pending)
	cmd.Printf("High priority:  %d\n", stats.HighPriority)

	if len(stats.CategoryCounts) == 0 {
		return nil
	}
	cmd.Println("\nBy life role:")
	names := make([]string, 0, len(stats.CategoryCounts))
	for name := range stats.CategoryCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		label := name
		if name != todo.UncategorizedLabel {
			label = models.LifeRoleEmoji(name) + " " + models.LifeRoleLabel(name)
		}
		cmd.Printf("  %-28s %d\n", label, stats.CategoryCounts[name])
	}
	return nil
}
