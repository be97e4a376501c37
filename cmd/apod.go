package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/nasa"
)

var apodDate string

// apodCmd represents the apod command
var apodCmd = &cobra.Command{
	Use:   "apod",
	Short: "Show the Astronomy Picture of the Day",
	Long: `Fetch the Astronomy Picture of the Day, optionally for a specific
date. APOD entries go back to 1995-06-16.`,
	RunE: runAPOD,
}

func init() {
	rootCmd.AddCommand(apodCmd)
	apodCmd.Flags().StringVar(&apodDate, "date", "", "picture date (YYYY-MM-DD, default today)")
}

func runAPOD(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apod, err := nasaClient.APOD(ctx, nasa.APODRequest{Date: apodDate})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s (%s)\n", apod.Title, apod.Date)
	fmt.Println(strings.Repeat("-", 80))
	if apod.Copyright != "" {
		fmt.Printf("© %s\n\n", strings.TrimSpace(apod.Copyright))
	}
	fmt.Println(wrapText(apod.Explanation, 80))
	fmt.Println()
	if apod.MediaType == "video" {
		fmt.Printf("Video: %s\n", apod.URL)
	} else {
		fmt.Printf("Image: %s\n", apod.URL)
		if apod.HDURL != "" {
			fmt.Printf("HD:    %s\n", apod.HDURL)
		}
	}

	printRateLimit()
	return nil
}

// wrapText wraps text at the given width for terminal display.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// printRateLimit shows the rate-limit snapshot recorded from the last
// response, when one was observed.
func printRateLimit() {
	if snapshot, ok := store.RateLimit(); ok {
		fmt.Printf("\nRate limit: %d/%d requests remaining\n", snapshot.Remaining, snapshot.Limit)
	}
}
