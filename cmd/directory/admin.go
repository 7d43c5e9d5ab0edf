package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gsinfo-directory/internal/client"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/model"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := client.AutoMigrate(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [listings.json]",
		Short: "Upsert directory listings into the businesses table",
		Long: `Upsert directory listings into the businesses table, keyed by listing_id.

Claim and verification fields of existing businesses are left untouched.
Without an argument the bundled listings are imported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			listings := a.catalog.All()
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read listings file: %w", err)
				}
				if listings, err = listing.Decode(data); err != nil {
					return err
				}
			}

			affected, err := a.services.Business.Import(cmd.Context(), listings)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d listings (%d rows affected)\n", len(listings), affected)
			return nil
		},
	}
}

func grantRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant-role [user-id] [role]",
		Short: "Grant an application role (admin, moderator, user) to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := model.AppRole(args[1])
			if !role.Valid() {
				return fmt.Errorf("unknown role %q", args[1])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.roleRepo.Grant(cmd.Context(), args[0], role); err != nil {
				return fmt.Errorf("grant role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s\n", role, args[0])
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	var (
		olderThan time.Duration
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Look up the gateway status of stale PENDING orders",
		Long: `Look up the gateway status of PENDING orders older than --older-than and apply
final statuses. Orders whose provider has no status lookup are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.services.Payment.Reconcile(cmd.Context(), olderThan, limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*time.Minute, "only check orders created before now minus this duration")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum orders to check")

	return cmd
}
