package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <start_date> <end_date>",
		Short: "Publish every draft day in a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := args[0], args[1]

			published, err := services.Publish(app.Ctx, app.DB, app.Logger, start, end)
			if errors.Is(err, services.ErrNothingToPublish) {
				fmt.Printf("No draft days between %s and %s; nothing to publish.\n", start, end)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Published %d day(s).\n", published)
			return nil
		},
	}
}
