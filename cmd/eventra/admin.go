package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventra/eventra-api/internal/core/ports"
)

// adminPasswordEnv lets operators avoid passing the password on the command line.
const adminPasswordEnv = "EVENTRA_ADMIN_PASSWORD"

func CreateAdminCmd() *cobra.Command {
	var in ports.AdminInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an administrator account",
		Long: "Creates an account holding the ADMIN role. This is the only way to " +
			"provision administrators outside the public signup flow.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				in.Password = os.Getenv(adminPasswordEnv)
			}
			if in.Password == "" {
				return fmt.Errorf("password is required (--password or %s)", adminPasswordEnv)
			}

			ctx := cmd.Context()
			cfg, log, a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			if cfg.SeedRoles {
				if err := a.SeedRoles(ctx); err != nil {
					return err
				}
			}

			confirmation, err := a.Auth.CreateAdminUser(ctx, in)
			if err != nil {
				log.Error().Err(err).Msg("create admin failed")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), confirmation.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&in.Password, "password", "", "administrator password (or "+adminPasswordEnv+")")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
