package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show the roster from a date onward (defaults to today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			if from == "" {
				from = model.FormatDate(time.Now())
			}

			published, drafts, err := services.RosterView(app.Ctx, app.DB, app.Logger, from)
			if err != nil {
				return err
			}

			printDays("Published", published)
			printDays("Draft", drafts)
			return nil
		},
	}

	cmd.Flags().String("from", "", "First date to show (YYYY-MM-DD)")

	return cmd
}

func printDays(label string, days []model.DayView) {
	fmt.Printf("\n%s days: %d\n", label, len(days))
	for _, day := range days {
		fmt.Printf("\n  %s (%s)\n", day.Date, day.DutyType)
		for _, a := range day.Allocations {
			marker := ""
			if a.Punishment {
				marker = " [punishment]"
			}
			fmt.Printf("    %-20s %s (%s)%s\n", a.PostName, a.PersonName, a.Class, marker)
		}
	}
}

// DebtorsCmd creates the debtors command
func DebtorsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "debtors",
		Short: "List people with outstanding punishment duty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debtors, err := services.PunishmentDebtors(app.Ctx, app.DB)
			if err != nil {
				return err
			}

			if len(debtors) == 0 {
				fmt.Println("No outstanding punishment duty.")
				return nil
			}

			for _, p := range debtors {
				fmt.Printf("  %-30s owes %d\n", p.Name, p.Balance)
			}
			return nil
		},
	}
}
