package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// RequestSwapCmd creates the requestSwap command
func RequestSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSwap <requester_id> <allocation_id> <substitute_id>",
		Short: "Request a duty swap, naming a substitute",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, allocationID, substituteID := args[0], args[1], args[2]
			reason, _ := cmd.Flags().GetString("reason")
			counterAllocationID, _ := cmd.Flags().GetString("counter-allocation")

			swap, err := services.RequestSwap(app.Ctx, app.DB, app.Logger,
				requesterID, allocationID, substituteID, counterAllocationID, reason)
			if err != nil {
				return err
			}

			fmt.Printf("Swap requested (id %s). Waiting for %s to respond.\n", swap.ID, substituteID)
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason for the swap (required)")
	cmd.Flags().String("counter-allocation", "", "Allocation offered in return (optional)")
	cmd.MarkFlagRequired("reason")

	return cmd
}
