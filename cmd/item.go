package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage a trip's itinerary",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <trip> <title>",
	Short: "Schedule an itinerary item",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemAdd,
}

var itemListCmd = &cobra.Command{
	Use:     "list <trip>",
	Aliases: []string{"ls"},
	Short:   "List a trip's itinerary",
	Args:    cobra.ExactArgs(1),
	RunE:    runItemList,
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <item>",
	Short: "Change an itinerary item",
	Long:  "Change an itinerary item. An empty --until or --dest clears it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemEdit,
}

var itemDeleteCmd = &cobra.Command{
	Use:     "delete <item>",
	Aliases: []string{"rm"},
	Short:   "Delete an itinerary item",
	Args:    cobra.ExactArgs(1),
	RunE:    runItemDelete,
}

var (
	itemAt       string
	itemUntil    string
	itemDest     string
	itemLocation string
	itemCategory string
	itemDesc     string
	itemTitle    string
)

func init() {
	for _, c := range []*cobra.Command{itemAddCmd, itemEditCmd} {
		c.Flags().StringVar(&itemAt, "at", "", "Start (YYYY-MM-DD HH:MM, local time)")
		c.Flags().StringVar(&itemUntil, "until", "", "End (YYYY-MM-DD HH:MM, local time)")
		c.Flags().StringVar(&itemDest, "dest", "", "Destination id")
		c.Flags().StringVar(&itemLocation, "location", "", "Where it happens")
		c.Flags().StringVarP(&itemCategory, "category", "c", string(model.ItemOther), "One of "+joinItemCategories())
		c.Flags().StringVar(&itemDesc, "description", "", "Details")
	}
	_ = itemAddCmd.MarkFlagRequired("at")
	itemEditCmd.Flags().StringVar(&itemTitle, "title", "", "New title")

	itemCmd.AddCommand(itemAddCmd, itemListCmd, itemEditCmd, itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}

func joinItemCategories() string {
	names := make([]string, len(model.ItemCategories))
	for i, c := range model.ItemCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		start, err := parseDateTime(itemAt)
		if err != nil {
			return err
		}
		it := model.ItineraryItem{
			TripID:      trip.ID,
			Title:       args[1],
			Description: itemDesc,
			Location:    itemLocation,
			StartTime:   start,
			Category:    model.ItemCategory(strings.ToLower(itemCategory)),
		}
		if itemUntil != "" {
			end, err := parseDateTime(itemUntil)
			if err != nil {
				return err
			}
			it.EndTime = &end
		}
		if itemDest != "" {
			id, err := e.svc.Destinations.Resolve(ctx, itemDest)
			if err != nil {
				return err
			}
			it.DestinationID = &id
		}

		created, err := e.svc.Items.Create(ctx, it)
		if err != nil {
			return err
		}
		fmt.Printf("  Scheduled %s  %s %s\n", created.Title,
			cli.FormatDate(created.StartTime.Local()), cli.FormatTime(created.StartTime.Local()))
		return nil
	})
}

func runItemList(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		items, err := e.svc.Items.List(ctx, trip.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Printf("\n  Nothing scheduled for %s.\n", trip.Title)
			return nil
		}
		dests, err := e.svc.Destinations.List(ctx, trip.ID)
		if err != nil {
			return err
		}
		names := make(map[uuid.UUID]string, len(dests))
		for _, d := range dests {
			names[d.ID] = d.Name
		}

		rows := make([][]string, 0, len(items))
		for _, it := range items {
			start := it.StartTime.Local()
			when := cli.FormatTime(start)
			if it.EndTime != nil {
				when += "–" + cli.FormatTime(it.EndTime.Local())
			}
			dest := ""
			if it.DestinationID != nil {
				dest = names[*it.DestinationID]
			}
			rows = append(rows, []string{
				cli.ShortID(it.ID),
				start.Format("Mon 2 Jan"),
				when,
				it.Title,
				string(it.Category),
				dest,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Itinerary · " + trip.Title,
			Headers: []string{"ID", "Day", "Time", "Item", "Category", "Destination"},
			Rows:    rows,
		}))
		return nil
	})
}

func runItemEdit(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Items.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		it, err := e.svc.Items.Get(ctx, id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			it.Title = itemTitle
		}
		if flags.Changed("at") {
			if it.StartTime, err = parseDateTime(itemAt); err != nil {
				return err
			}
		}
		if flags.Changed("until") {
			it.EndTime = nil
			if itemUntil != "" {
				end, err := parseDateTime(itemUntil)
				if err != nil {
					return err
				}
				it.EndTime = &end
			}
		}
		if flags.Changed("dest") {
			it.DestinationID = nil
			if itemDest != "" {
				dest, err := e.svc.Destinations.Resolve(ctx, itemDest)
				if err != nil {
					return err
				}
				it.DestinationID = &dest
			}
		}
		if flags.Changed("location") {
			it.Location = itemLocation
		}
		if flags.Changed("category") {
			it.Category = model.ItemCategory(strings.ToLower(itemCategory))
		}
		if flags.Changed("description") {
			it.Description = itemDesc
		}

		updated, err := e.svc.Items.Update(ctx, it)
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s  %s %s\n", updated.Title,
			cli.FormatDate(updated.StartTime.Local()), cli.FormatTime(updated.StartTime.Local()))
		return nil
	})
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Items.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		if err := e.svc.Items.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted item %s\n", cli.ShortID(id))
		return nil
	})
}
