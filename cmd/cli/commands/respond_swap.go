package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// RespondSwapCmd creates the respondSwap command
func RespondSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respondSwap <swap_id> <responder_id>",
		Short: "Accept or decline a swap request addressed to you",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			swapID, responderID := args[0], args[1]
			accept, _ := cmd.Flags().GetBool("accept")
			decline, _ := cmd.Flags().GetBool("decline")

			if accept == decline {
				return fmt.Errorf("pass exactly one of --accept or --decline")
			}

			if err := services.RespondToSwap(app.Ctx, app.DB, app.Logger, swapID, responderID, accept); err != nil {
				return err
			}

			if accept {
				fmt.Println("Swap accepted; awaiting scheduler approval.")
			} else {
				fmt.Println("Swap declined.")
			}
			return nil
		},
	}

	cmd.Flags().Bool("accept", false, "Accept the swap")
	cmd.Flags().Bool("decline", false, "Decline the swap")

	return cmd
}
