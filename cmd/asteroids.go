package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/filter"
	"github.com/astrodash/astrodash/nasa"
)

var (
	neoStartDate  string
	neoEndDate    string
	neoFilterExpr string
)

// asteroidsCmd represents the asteroids command
var asteroidsCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "List near-Earth asteroid close approaches",
	Long: `List asteroids approaching Earth within a date window (at most 7
days, the upstream feed limit). Approaches can be narrowed with a filter
expression over these fields:

  name, date, hazardous, diameter_min, diameter_max (meters),
  velocity_kph, miss_km, miss_lunar, magnitude

Examples:
  astrodash asteroids --filter 'hazardous'
  astrodash asteroids --filter 'miss_lunar < 10 && diameter_max > 100'`,
	RunE: runAsteroids,
}

func init() {
	rootCmd.AddCommand(asteroidsCmd)

	asteroidsCmd.Flags().StringVar(&neoStartDate, "start", "", "window start (YYYY-MM-DD, default today)")
	asteroidsCmd.Flags().StringVar(&neoEndDate, "end", "", "window end (YYYY-MM-DD, default start+6 days)")
	asteroidsCmd.Flags().StringVarP(&neoFilterExpr, "filter", "f", "", "filter expression")
}

func runAsteroids(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	start := neoStartDate
	if start == "" {
		start = time.Now().UTC().Format("2006-01-02")
	}
	end := neoEndDate
	if end == "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			end = t.AddDate(0, 0, 6).Format("2006-01-02")
		} else {
			end = start
		}
	}

	// Compile the filter before spending a request on the feed.
	var approachFilter *filter.Filter
	if neoFilterExpr != "" {
		var err error
		approachFilter, err = filter.Compile(neoFilterExpr)
		if err != nil {
			return err
		}
	}

	logger.Info().Str("start", start).Str("end", end).Msg("Fetching asteroid feed")

	feed, err := nasaClient.NeoFeed(ctx, nasa.NeoFeedRequest{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}

	approaches := filter.Flatten(feed)
	if approachFilter != nil {
		approaches, err = approachFilter.Apply(approaches)
		if err != nil {
			return err
		}
	}

	if len(approaches) == 0 {
		fmt.Println("No close approaches match.")
		return nil
	}

	fmt.Printf("\n%d close approaches between %s and %s:\n", len(approaches), start, end)
	fmt.Println(strings.Repeat("-", 96))
	fmt.Printf("%-12s %-28s %-10s %12s %14s %12s\n", "DATE", "NAME", "HAZARD", "DIAMETER", "VELOCITY", "MISS")
	fmt.Println(strings.Repeat("-", 96))
	for _, a := range approaches {
		hazard := ""
		if a.Hazardous {
			hazard = "YES"
		}
		name := a.Name
		if len(name) > 26 {
			name = name[:23] + "..."
		}
		fmt.Printf("%-12s %-28s %-10s %9.0f m %10.0f km/h %9.1f LD\n",
			a.Date, name, hazard, a.DiameterMax, a.VelocityKPH, a.MissLunar)
	}

	printRateLimit()
	return nil
}
