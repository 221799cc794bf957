package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
)

var destCmd = &cobra.Command{
	Use:     "dest",
	Aliases: []string{"destination"},
	Short:   "Manage the stops of a trip",
}

var destAddCmd = &cobra.Command{
	Use:   "add <trip> <name>",
	Short: "Add a destination",
	Args:  cobra.ExactArgs(2),
	RunE:  runDestAdd,
}

var destListCmd = &cobra.Command{
	Use:     "list <trip>",
	Aliases: []string{"ls"},
	Short:   "List a trip's destinations",
	Args:    cobra.ExactArgs(1),
	RunE:    runDestList,
}

var destEditCmd = &cobra.Command{
	Use:   "edit <destination>",
	Short: "Change a destination",
	Args:  cobra.ExactArgs(1),
	RunE:  runDestEdit,
}

var destDeleteCmd = &cobra.Command{
	Use:     "delete <destination>",
	Aliases: []string{"rm"},
	Short:   "Delete a destination",
	Args:    cobra.ExactArgs(1),
	RunE:    runDestDelete,
}

var (
	destStart string
	destEnd   string
	destColor string
	destNotes string
	destName  string
)

func init() {
	for _, c := range []*cobra.Command{destAddCmd, destEditCmd} {
		c.Flags().StringVar(&destStart, "start", "", "Arrival day (YYYY-MM-DD)")
		c.Flags().StringVar(&destEnd, "end", "", "Departure day (YYYY-MM-DD)")
		c.Flags().StringVar(&destColor, "color", "", "Calendar color, defaults to the trip's")
		c.Flags().StringVar(&destNotes, "notes", "", "Free-form notes")
	}
	_ = destAddCmd.MarkFlagRequired("start")
	_ = destAddCmd.MarkFlagRequired("end")
	destEditCmd.Flags().StringVar(&destName, "name", "", "New name")

	destCmd.AddCommand(destAddCmd, destListCmd, destEditCmd, destDeleteCmd)
	rootCmd.AddCommand(destCmd)
}

func runDestAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		start, err := parseDate(destStart)
		if err != nil {
			return err
		}
		end, err := parseDate(destEnd)
		if err != nil {
			return err
		}

		d, err := e.svc.Destinations.Create(ctx, model.Destination{
			TripID:    trip.ID,
			Name:      args[1],
			StartDate: start,
			EndDate:   end,
			Color:     destColor,
			Notes:     destNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Added %s to %s  (%s)\n", d.Name, trip.Title, cli.FormatDateRange(d.StartDate, d.EndDate))
		return nil
	})
}

func runDestList(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		dests, err := e.svc.Destinations.List(ctx, trip.ID)
		if err != nil {
			return err
		}
		if len(dests) == 0 {
			fmt.Printf("\n  %s has no destinations.\n", trip.Title)
			return nil
		}

		rows := make([][]string, 0, len(dests))
		for _, d := range dests {
			color := d.Color
			if color == "" {
				color = "(trip)"
			}
			rows = append(rows, []string{
				cli.ShortID(d.ID),
				d.Name,
				cli.FormatDateRange(d.StartDate, d.EndDate),
				fmt.Sprintf("%d", model.DaysBetween(d.StartDate, d.EndDate)),
				color,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Destinations · " + trip.Title,
			Headers: []string{"ID", "Name", "Dates", "Nights", "Color"},
			Rows:    rows,
		}))
		return nil
	})
}

func runDestEdit(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Destinations.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		d, err := e.svc.Destinations.Get(ctx, id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			d.Name = destName
		}
		if flags.Changed("start") {
			if d.StartDate, err = parseDate(destStart); err != nil {
				return err
			}
		}
		if flags.Changed("end") {
			if d.EndDate, err = parseDate(destEnd); err != nil {
				return err
			}
		}
		if flags.Changed("color") {
			d.Color = destColor
		}
		if flags.Changed("notes") {
			d.Notes = destNotes
		}

		updated, err := e.svc.Destinations.Update(ctx, d)
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s  (%s)\n", updated.Name, cli.FormatDateRange(updated.StartDate, updated.EndDate))
		return nil
	})
}

func runDestDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Destinations.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		if err := e.svc.Destinations.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted destination %s\n", cli.ShortID(id))
		return nil
	})
}
