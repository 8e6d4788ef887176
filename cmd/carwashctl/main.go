package main

import (
	"carwash/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd is the admin tool for tasks that do not go through the dashboard
var rootCmd = &cobra.Command{
	Use:   "carwashctl",
	Short: "Administer the car wash backend",
	Long: `Administrative commands for the car wash backend.

The database connection is read from the same environment variables
(or .env file) as the server.`,
	SilenceUsage: true,
}

func openDB() (*gorm.DB, error) {
	cfg := config.Env()
	return config.InitDB(
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
	)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(exportShiftsCmd)
	rootCmd.AddCommand(treeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
