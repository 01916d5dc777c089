package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/core/services"
)

// GenerateDayCmd creates the generateDay command
func GenerateDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateDay <date> <duty_type>",
		Short: "Generate the roster for a single day (duty type RN or RD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			dutyType := model.DutyType(args[1])

			if err := services.GenerateDay(app.Ctx, app.DB, app.Logger, date, dutyType); err != nil {
				return err
			}

			fmt.Printf("Roster for %s (%s) generated successfully.\n", date, dutyType)
			return nil
		},
	}
}
