package main

import (
	"encoding/json"

	"backoffice/cmd"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"

	"github.com/spf13/cobra"
)

func newAssignCommand(a *app) *cobra.Command {
	var orderFlag, riderFlag, asFlag string

	command := &cobra.Command{
		Use:   "assign",
		Short: "Assign a pending order to a rider",
		RunE: func(c *cobra.Command, _ []string) error {
			orderID, err := kernel.UUIDFromString(orderFlag)
			if err != nil {
				return err
			}
			riderID, err := kernel.UUIDFromString(riderFlag)
			if err != nil {
				return err
			}

			root, release, err := a.wire(c.Context())
			if err != nil {
				return err
			}
			defer release()

			caller, err := callerRole(c, root, asFlag)
			if err != nil {
				return err
			}

			cmdErr := func() error {
				assign, buildErr := commands.NewAssignOrderCommand(orderID, riderID, caller)
				if buildErr != nil {
					return buildErr
				}
				return root.CreateAssignOrderCommandHandler().Handle(c.Context(), assign)
			}()
			return printOutcome(c, commands.OutcomeOf(cmdErr, commands.MsgAssignFailed))
		},
	}
	command.Flags().StringVar(&orderFlag, "order", "", "order id")
	command.Flags().StringVar(&riderFlag, "rider", "", "rider id")
	command.Flags().StringVar(&asFlag, "as", "", "profile id of the staff member acting")
	_ = command.MarkFlagRequired("order")
	_ = command.MarkFlagRequired("rider")
	_ = command.MarkFlagRequired("as")
	return command
}

func newCancelCommand(a *app) *cobra.Command {
	var orderFlag, reasonFlag, asFlag string

	command := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an order that is not delivered or cancelled yet",
		RunE: func(c *cobra.Command, _ []string) error {
			orderID, err := kernel.UUIDFromString(orderFlag)
			if err != nil {
				return err
			}

			root, release, err := a.wire(c.Context())
			if err != nil {
				return err
			}
			defer release()

			caller, err := callerRole(c, root, asFlag)
			if err != nil {
				return err
			}

			cmdErr := func() error {
				cancel, buildErr := commands.NewCancelOrderCommand(orderID, caller, reasonFlag)
				if buildErr != nil {
					return buildErr
				}
				return root.CreateCancelOrderCommandHandler().Handle(c.Context(), cancel)
			}()
			return printOutcome(c, commands.OutcomeOf(cmdErr, commands.MsgCancelFailed))
		},
	}
	command.Flags().StringVar(&orderFlag, "order", "", "order id")
	command.Flags().StringVar(&reasonFlag, "reason", "", "cancellation reason")
	command.Flags().StringVar(&asFlag, "as", "", "profile id of the staff member acting")
	_ = command.MarkFlagRequired("order")
	_ = command.MarkFlagRequired("as")
	return command
}

// callerRole resolves the acting staff member the same way the HTTP adapter does.
func callerRole(c *cobra.Command, root cmd.CompositionRoot, profileID string) (role.Role, error) {
	id, err := kernel.UUIDFromString(profileID)
	if err != nil {
		return role.Unknown, err
	}
	query, err := queries.NewGetProfileQuery(id)
	if err != nil {
		return role.Unknown, err
	}
	profile, err := root.CreateGetProfileQueryHandler().Handle(c.Context(), query)
	if err != nil {
		return role.Unknown, err
	}
	return profile.Role, nil
}

func printOutcome(c *cobra.Command, outcome commands.Outcome) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}
