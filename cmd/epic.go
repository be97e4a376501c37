package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/nasa"
)

var (
	epicType      string
	epicDate      string
	epicListDates bool
)

// epicCmd represents the epic command
var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Browse full-disc Earth imagery from the EPIC camera",
	Long: `Browse full-disc Earth images from the EPIC camera aboard DSCOVR,
in either the natural or enhanced color pipeline. Without --date the
most recent imagery is shown; --dates lists every date with imagery.`,
	RunE: runEPIC,
}

func init() {
	rootCmd.AddCommand(epicCmd)

	epicCmd.Flags().StringVar(&epicType, "type", "natural", "image pipeline (natural or enhanced)")
	epicCmd.Flags().StringVar(&epicDate, "date", "", "imagery date (YYYY-MM-DD, default most recent)")
	epicCmd.Flags().BoolVar(&epicListDates, "dates", false, "list available dates instead of images")
}

func runEPIC(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	imageType := nasa.EPICImageType(epicType)

	if epicListDates {
		dates, err := nasaClient.EPICAvailableDates(ctx, imageType)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d dates with %s imagery:\n", len(dates), imageType)
		for _, date := range dates {
			fmt.Println(date)
		}
		printRateLimit()
		return nil
	}

	epicImages, err := nasaClient.EPICImages(ctx, nasa.EPICRequest{Type: imageType, Date: epicDate})
	if err != nil {
		return err
	}

	if len(epicImages) == 0 {
		fmt.Println("No imagery available for this date. Use --dates to list available dates.")
		return nil
	}

	fmt.Printf("\n%d %s images:\n", len(epicImages), imageType)
	fmt.Println(strings.Repeat("-", 80))
	for _, image := range epicImages {
		// The archive path needs the capture date, not the requested one.
		date := image.Date
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Printf("• %s (centroid %.2f, %.2f)\n", image.Date, image.Centroid.Lat, image.Centroid.Lon)
		fmt.Printf("  %s\n", nasa.EPICImageURL(image.Image, date, imageType, store.Key()))
	}

	printRateLimit()
	return nil
}
