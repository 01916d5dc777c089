package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// GeneratePeriodCmd creates the generatePeriod command
func GeneratePeriodCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generatePeriod <start_date> <end_date>",
		Short: "Generate the roster for every day in a date range (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := args[0], args[1]

			generated, err := services.GeneratePeriod(app.Ctx, app.DB, app.Cfg, app.Logger, start, end)
			if err != nil {
				if generated > 0 {
					fmt.Printf("Generated %d day(s) before stopping.\n", generated)
				}
				return err
			}

			fmt.Printf("Generated %d day(s) from %s to %s.\n", generated, start, end)
			return nil
		},
	}
}
