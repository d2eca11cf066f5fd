package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSeedCmd persists the default dashboard into the store. When the store
// already holds a dashboard this is a no-op unless --force is given.
func newSeedCmd(dbPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default dashboard to the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closeAll, err := openApp(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer closeAll()

			existing, err := application.Store.LoadDashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("load dashboard: %w", err)
			}
			if existing != nil && !force {
				cmd.Println("store already holds a dashboard, use --force to overwrite")
				return nil
			}
			if existing != nil {
				application.Dashboard.RestoreDefault()
			}

			if err := application.Dashboard.Save(cmd.Context()); err != nil {
				return fmt.Errorf("save dashboard: %w", err)
			}
			cmd.Printf("seeded %q into %s\n", application.Dashboard.Name(), *dbPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing dashboard")
	return cmd
}
