package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newExportCmd prints the stored dashboard document as indented JSON.
func newExportCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the dashboard document as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closeAll, err := openApp(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer closeAll()

			doc := application.Dashboard.Document()
			raw, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode dashboard: %w", err)
			}
			cmd.Println(string(raw))
			return nil
		},
	}
}
