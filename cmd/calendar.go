package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/service"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar <trip>",
	Aliases: []string{"cal"},
	Short:   "Show a month of a trip as a calendar grid",
	Args:    cobra.ExactArgs(1),
	RunE:    runCalendar,
}

var calendarMonth string

func init() {
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "Month to show (YYYY-MM), defaults to the trip's current or first month")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}

		month := service.StartMonth(trip, time.Now())
		if calendarMonth != "" {
			if month, err = parseMonth(calendarMonth); err != nil {
				return err
			}
		}

		view, err := e.svc.Calendar.Month(ctx, trip.ID, month, time.Local, calendar.Options{
			FirstWeekday: e.cfg.FirstWeekday(),
			ShowAdjacent: e.cfg.Calendar.ShowAdjacent,
		})
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(trip.Title + "  " + cli.FormatDateRange(trip.StartDate, trip.EndDate)))
		fmt.Println()
		fmt.Print(cli.RenderMonth(view.Grid))

		if len(view.Items) > 0 {
			fmt.Println()
			rows := make([][]string, 0, len(view.Items))
			for _, it := range view.Items {
				start := it.StartTime.Local()
				rows = append(rows, []string{start.Format("Mon 2"), cli.FormatTime(start), it.Title, string(it.Category)})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Day", "Time", "Item", "Category"},
				Rows:    rows,
			}))
		}
		return nil
	})
}
