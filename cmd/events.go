package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/eonet"
)

var (
	eventDays     int
	eventCategory string
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Track natural events from EONET",
	Long: `List natural events (wildfires, storms, volcanoes, ...) tracked by
the Earth Observatory Natural Event Tracker. Use "events categories" to
see the category ids accepted by --category.`,
	RunE: runEvents,
}

// eventsCategoriesCmd represents the events categories command
var eventsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List EONET event categories",
	RunE:  runEventCategories,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsCategoriesCmd)

	eventsCmd.Flags().IntVar(&eventDays, "days", 0, "limit to events from the last N days")
	eventsCmd.Flags().StringVar(&eventCategory, "category", "", "restrict to a category id")
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := eonet.EventsRequest{Category: eventCategory}
	if cmd.Flags().Changed("days") {
		days := eventDays
		req.Days = &days
	}

	events, err := eonetClient.Events(ctx, req)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events currently tracked for these filters.")
		return nil
	}

	fmt.Printf("\n%d tracked events:\n", len(events))
	fmt.Println(strings.Repeat("-", 80))
	for _, event := range events {
		var categories []string
		for _, c := range event.Categories {
			categories = append(categories, c.Title)
		}
		fmt.Printf("• %s [%s]\n", event.Title, strings.Join(categories, ", "))
		if len(event.Geometry) > 0 {
			last := event.Geometry[len(event.Geometry)-1]
			date := last.Date
			if len(date) > 10 {
				date = date[:10]
			}
			if len(last.Coordinates) >= 2 {
				fmt.Printf("  Last seen %s at %.2f, %.2f\n", date, last.Coordinates[1], last.Coordinates[0])
			}
		}
	}

	return nil
}

func runEventCategories(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	categories, err := eonetClient.Categories(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d categories:\n", len(categories))
	fmt.Println(strings.Repeat("-", 80))
	for _, category := range categories {
		fmt.Printf("• %-16s %s\n", category.ID, category.Description)
	}

	return nil
}
