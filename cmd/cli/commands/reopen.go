package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// ReopenCmd creates the reopen (errata) command
func ReopenCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <date>",
		Short: "Reopen a published day as draft so it can be corrected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]

			if err := services.Reopen(app.Ctx, app.DB, app.Logger, date); err != nil {
				return err
			}

			fmt.Printf("Day %s reopened as draft.\n", date)
			return nil
		},
	}
}
