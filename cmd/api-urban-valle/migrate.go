package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MinYonhee/api-urban-valle/internal"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
)

func migrateCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	cmd.AddCommand(migrateUpCmd(envFile), migrateStatusCmd(envFile))
	return cmd
}

func migrateUpCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			appConfig, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			migrator, logger, cleanup, err := internal.NewMigrator(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := contextkeys.ContextWithLogger(cmd.Context(), logger)
			pending, err := migrator.Up(ctx, dryRun)
			if err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, "Pending migrations:")
			} else {
				fmt.Fprintln(out, "Applied migrations:")
			}
			for _, mig := range pending {
				fmt.Fprintf(out, "- %s (%s)\n", mig.Name, mig.Version)
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show pending migrations without applying them")

	return cmd
}

func migrateStatusCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			migrator, logger, cleanup, err := internal.NewMigrator(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			statuses, err := migrator.Status(contextkeys.ContextWithLogger(cmd.Context(), logger))
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Version\tName\tStatus\tApplied at")
			for _, st := range statuses {
				status, appliedAt := "Pending", "-"
				if st.AppliedAt != nil {
					status, appliedAt = "Applied", st.AppliedAt.Local().Format(time.DateTime)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Version, st.Name, status, appliedAt)
			}
			return w.Flush()
		},
	}
}
