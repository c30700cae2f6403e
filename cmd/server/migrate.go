package main

import (
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/crowdmap/crowd-heatmap/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(conn *sql.DB) error {
			if err := database.MigrateUp(conn); err != nil {
				return err
			}
			return printVersion(cmd, conn)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(conn *sql.DB) error {
			if err := database.MigrateDown(conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema rolled back")
			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(conn *sql.DB) error {
			return printVersion(cmd, conn)
		})
	},
}

func withDB(fn func(*sql.DB) error) error {
	conn, err := database.Open(cfg.DB())
	if err != nil {
		return eris.Wrap(err, "open database")
	}
	defer conn.Close()
	return fn(conn)
}

func printVersion(cmd *cobra.Command, conn *sql.DB) error {
	version, dirty, err := database.MigrateVersion(conn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
