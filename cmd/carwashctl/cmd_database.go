package main

import (
	"bytes"
	"carwash/repository"
	"carwash/service"
	"carwash/utils"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	seedFile        string
	userEmail       string
	userDisplayName string
	userPassword    string
	userPermissions []string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := repository.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load grading parameters and estimations",
	Long: `Load grading parameters and estimations from a YAML file.

Without --file the built-in defaults are used. Existing rows with the same
id are overwritten, other rows are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = bytes.NewReader(repository.DefaultGradingSeed())
		if seedFile != "" {
			file, err := os.Open(seedFile)
			if err != nil {
				return err
			}
			defer utils.Closer(file)()
			r = file
		}
		seed, err := repository.LoadGradingSeed(r)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := repository.NewGradingRepository(db).ApplySeed(seed); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d grading parameters and %d estimations\n", len(seed.Parameters), len(seed.Estimations))
		return nil
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a dashboard user",
	RunE: func(cmd *cobra.Command, args []string) error {
		permissions, err := parsePermissions(userPermissions)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		user, err := service.NewUserService(db).CreateUser(userEmail, userDisplayName, userPassword, permissions)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}

func parsePermissions(values []string) ([]repository.Permission, error) {
	known := []repository.Permission{repository.PermissionAdmin, repository.PermissionFinance, repository.PermissionWarehouse}
	permissions := make([]repository.Permission, 0, len(values))
	for _, value := range values {
		permission := repository.Permission(value)
		if !utils.Contains(known, permission) {
			return nil, fmt.Errorf("unknown permission %q", value)
		}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (default: built-in grading seed)")

	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Login email")
	createUserCmd.Flags().StringVar(&userDisplayName, "name", "", "Display name")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "Initial password, at least 8 characters")
	createUserCmd.Flags().StringSliceVar(&userPermissions, "permission", nil, "Permission to grant (admin, finance, warehouse), repeatable")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
