package main

import (
	"fmt"

	"backoffice/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func newReconcileCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute the status of every busy or available rider once",
		RunE: func(c *cobra.Command, _ []string) error {
			root, release, err := a.wire(c.Context())
			if err != nil {
				return err
			}
			defer release()

			changed, err := root.CreateReconcileRidersCommandHandler().Handle(c.Context(), commands.NewReconcileRidersCommand())
			fmt.Fprintf(c.OutOrStdout(), "riders changed: %d\n", changed)
			return err
		},
	}
}
