package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/infopontes/leishai-backend/internal/config"
	dbpkg "github.com/infopontes/leishai-backend/internal/db"
	"github.com/infopontes/leishai-backend/internal/seed"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the LeishAI database with reference data",
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "roles-users",
			Short: "Seed roles and bootstrap users",
			Run: func(cmd *cobra.Command, args []string) {
				db := dbpkg.NewDB(cfg)
				if err := seed.RolesAndUsers(db, cfg); err != nil {
					log.Printf("An error occurred during seeding: %v", err)
				}
			},
		},
		&cobra.Command{
			Use:   "breeds",
			Short: "Seed the canonical breed list",
			Run: func(cmd *cobra.Command, args []string) {
				db := dbpkg.NewDB(cfg)
				if err := seed.Breeds(db); err != nil {
					log.Printf("An error occurred during seeding: %v", err)
				}
			},
		},
		&cobra.Command{
			Use:   "csv <file>",
			Short: "Import the legacy dataset from a semicolon-delimited CSV",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				db := dbpkg.NewDB(cfg)
				if err := seed.FromCSV(db, cfg, args[0]); err != nil {
					log.Printf("An error occurred during seeding: %v", err)
				}
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Seed roles, users and breeds",
			Run: func(cmd *cobra.Command, args []string) {
				log.Println(">>> Starting Database Seeding Process <<<")
				db := dbpkg.NewDB(cfg)
				if err := seed.RolesAndUsers(db, cfg); err != nil {
					log.Printf("An error occurred during seeding: %v", err)
				}
				if err := seed.Breeds(db); err != nil {
					log.Printf("An error occurred during seeding: %v", err)
				}
				log.Println(">>> Database Seeding Process Finished <<<")
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
