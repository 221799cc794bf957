package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/report"
	"github.com/theirongolddev/wayfare/internal/service"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var tripAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripAdd,
}

var tripListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List trips",
	Args:    cobra.NoArgs,
	RunE:    runTripList,
}

var tripShowCmd = &cobra.Command{
	Use:   "show <trip>",
	Short: "Show a trip report",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripShow,
}

var tripEditCmd = &cobra.Command{
	Use:   "edit <trip>",
	Short: "Change a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripEdit,
}

var tripDeleteCmd = &cobra.Command{
	Use:     "delete <trip>",
	Aliases: []string{"rm"},
	Short:   "Delete a trip and everything it owns",
	Args:    cobra.ExactArgs(1),
	RunE:    runTripDelete,
}

var (
	tripStart       string
	tripEnd         string
	tripDestination string
	tripBudget      string
	tripCurrency    string
	tripColor       string
	tripNotes       string
	tripTitle       string
	tripShowRaw     bool
	tripWidth       int
)

func init() {
	for _, c := range []*cobra.Command{tripAddCmd, tripEditCmd} {
		c.Flags().StringVar(&tripStart, "start", "", "First day (YYYY-MM-DD)")
		c.Flags().StringVar(&tripEnd, "end", "", "Last day (YYYY-MM-DD)")
		c.Flags().StringVar(&tripDestination, "destination", "", "Where the trip goes")
		c.Flags().StringVar(&tripBudget, "budget", "", "Budget in the trip currency")
		c.Flags().StringVar(&tripCurrency, "currency", "", "ISO 4217 currency code")
		c.Flags().StringVar(&tripColor, "color", "", "Calendar color (#RRGGBB)")
		c.Flags().StringVar(&tripNotes, "notes", "", "Free-form notes")
	}
	_ = tripAddCmd.MarkFlagRequired("start")
	_ = tripAddCmd.MarkFlagRequired("end")
	tripEditCmd.Flags().StringVar(&tripTitle, "title", "", "New title")

	tripShowCmd.Flags().BoolVar(&tripShowRaw, "markdown", false, "Print the raw markdown")
	tripShowCmd.Flags().IntVarP(&tripWidth, "width", "w", 80, "Wrap width")

	tripCmd.AddCommand(tripAddCmd, tripListCmd, tripShowCmd, tripEditCmd, tripDeleteCmd)
	rootCmd.AddCommand(tripCmd)
}

func runTripAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		start, err := parseDate(tripStart)
		if err != nil {
			return err
		}
		end, err := parseDate(tripEnd)
		if err != nil {
			return err
		}
		budget := decimal.Zero
		if tripBudget != "" {
			if budget, err = money.Parse(tripBudget); err != nil {
				return fmt.Errorf("%w: %w", service.ErrValidation, err)
			}
		}

		trip, err := e.svc.Trips.Create(ctx, model.Trip{
			Title:       args[0],
			Destination: tripDestination,
			StartDate:   start,
			EndDate:     end,
			Budget:      budget,
			Currency:    tripCurrency,
			Color:       tripColor,
			Notes:       tripNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Created trip %s  %s  (%s)\n", cli.ShortID(trip.ID), trip.Title, cli.FormatDateRange(trip.StartDate, trip.EndDate))
		return nil
	})
}

func runTripList(cmd *cobra.Command, _ []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trips, err := e.svc.Trips.List(ctx)
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			fmt.Println("\n  No trips yet.")
			fmt.Println("  Create one with `wayfare trip add \"Lisbon\" --start 2025-06-01 --end 2025-06-10`.")
			return nil
		}

		now := time.Now()
		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("TRIPS  (%d)", len(trips))))
		fmt.Println()

		rows := make([][]string, 0, len(trips))
		for _, t := range trips {
			rows = append(rows, []string{
				cli.ShortID(t.ID),
				t.Title,
				cli.FormatDateRange(t.StartDate, t.EndDate),
				tripState(t, now),
				budgetCell(t),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Trip", "Dates", "Status", "Budget"},
			Rows:    rows,
		}))
		return nil
	})
}

func tripState(t model.Trip, now time.Time) string {
	switch service.PhaseOf(t, now) {
	case service.PhaseUpcoming:
		return "starts " + cli.FormatCountdown(service.DaysUntil(t, now))
	case service.PhaseOngoing:
		return "ongoing, " + cli.FormatPercent(service.Progress(t, now))
	default:
		return "completed"
	}
}

func budgetCell(t model.Trip) string {
	if t.Budget.IsZero() {
		return "-"
	}
	return cli.FormatMoney(t.Budget, t.Currency)
}

func runTripShow(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		data, err := report.Load(ctx, e.svc, trip.ID, time.Now())
		if err != nil {
			return err
		}
		md, err := report.Markdown(data)
		if err != nil {
			return err
		}
		if tripShowRaw {
			fmt.Print(md)
			return nil
		}
		out, err := report.Render(md, tripWidth, e.cfg.Appearance.DarkMode)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	})
}

func runTripEdit(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			trip.Title = tripTitle
		}
		if flags.Changed("destination") {
			trip.Destination = tripDestination
		}
		if flags.Changed("start") {
			if trip.StartDate, err = parseDate(tripStart); err != nil {
				return err
			}
		}
		if flags.Changed("end") {
			if trip.EndDate, err = parseDate(tripEnd); err != nil {
				return err
			}
		}
		if flags.Changed("budget") {
			if trip.Budget, err = money.Parse(tripBudget); err != nil {
				return fmt.Errorf("%w: %w", service.ErrValidation, err)
			}
		}
		if flags.Changed("currency") {
			trip.Currency = tripCurrency
		}
		if flags.Changed("color") {
			trip.Color = tripColor
		}
		if flags.Changed("notes") {
			trip.Notes = tripNotes
		}

		updated, err := e.svc.Trips.Update(ctx, trip)
		if err != nil {
			return err
		}
		fmt.Printf("  Updated trip %s  %s\n", cli.ShortID(updated.ID), updated.Title)
		return nil
	})
}

func runTripDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		if err := e.svc.Trips.Delete(ctx, trip.ID); err != nil {
			return err
		}
		fmt.Printf("  Deleted trip %s  %s\n", cli.ShortID(trip.ID), trip.Title)
		return nil
	})
}
