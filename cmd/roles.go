package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/models"
)

// rolesCmd represents the roles command.
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the life role categories",
	Long:  `List the fixed life role categories a todo can belong to, with their ids.`,
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, args []string) error {
	for _, role := range models.LifeRoleCategories {
		cmd.Printf("%s %-22s %s\n", role.Emoji, role.ID, role.Description)
	}
	return nil
}
