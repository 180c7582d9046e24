package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default roles and permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, _, a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			if err := a.SeedRoles(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "roles seeded")
			return nil
		},
	}
}
