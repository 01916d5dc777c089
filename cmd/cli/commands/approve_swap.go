package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// ApproveSwapCmd creates the approveSwap command
func ApproveSwapCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approveSwap <swap_id>",
		Short: "Approve a swap, transferring the duty and its fairness point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			swapID := args[0]

			if err := services.ApproveSwap(app.Ctx, app.DB, app.Logger, swapID); err != nil {
				return err
			}

			fmt.Println("Swap approved.")
			return nil
		},
	}
}

// PendingSwapsCmd creates the pendingSwaps command
func PendingSwapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pendingSwaps",
		Short: "List swap requests awaiting scheduler approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			swaps, err := services.PendingSwaps(app.Ctx, app.DB)
			if err != nil {
				return err
			}

			if len(swaps) == 0 {
				fmt.Println("No swaps awaiting approval.")
				return nil
			}

			fmt.Printf("%d swap(s) awaiting approval:\n\n", len(swaps))
			for _, s := range swaps {
				fmt.Printf("  %s  %s @ %s: %s -> %s (%s)\n",
					s.ID, s.PostName, s.Date, s.RequesterName, s.SubstituteName, s.Reason)
			}
			return nil
		},
	}
}
