// Migrate command: apply pending data migrations without serving.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/listmaker/internal/migrate"
	"github.com/mesh-intelligence/listmaker/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending data migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		storageDir, err := resolveStorageDir()
		if err != nil {
			return fmt.Errorf("resolve storage dir: %w", err)
		}

		manager := storage.NewManager(storageDir, nil)
		migrator := migrate.NewMigrator(manager, nil)
		if err := migrator.Run(); err != nil {
			return err
		}

		fmt.Println("Migrations up to date.")
		return nil
	},
}
