// Seed command: populate storage with sample lists.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/listmaker/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate storage with sample lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, err := openRepository()
		if err != nil {
			return err
		}

		seeder := seed.NewSeeder(repo)
		if err := seeder.Run(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		fmt.Printf("Seeded storage; %d lists total.\n", len(repo.GetAll()))
		return nil
	},
}
