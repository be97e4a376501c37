package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/images"
)

var (
	mediaType      string
	mediaYearStart string
	mediaYearEnd   string
	mediaPage      int
)

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:   "media <query>",
	Short: "Search the NASA Image and Video Library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMedia,
}

func init() {
	rootCmd.AddCommand(mediaCmd)

	mediaCmd.Flags().StringVar(&mediaType, "type", "", "media type (image, video or audio)")
	mediaCmd.Flags().StringVar(&mediaYearStart, "year-start", "", "earliest creation year")
	mediaCmd.Flags().StringVar(&mediaYearEnd, "year-end", "", "latest creation year")
	mediaCmd.Flags().IntVar(&mediaPage, "page", 1, "result page (100 items per page)")
}

func runMedia(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.Join(args, " ")

	response, err := imagesClient.Search(ctx, images.SearchRequest{
		Query:     query,
		MediaType: mediaType,
		YearStart: mediaYearStart,
		YearEnd:   mediaYearEnd,
		Page:      mediaPage,
	})
	if err != nil {
		return err
	}

	items := response.Collection.Items
	if len(items) == 0 {
		fmt.Printf("No media found for %q.\n", query)
		return nil
	}

	fmt.Printf("\n%d total hits for %q, showing page %d:\n",
		response.Collection.Metadata.TotalHits, query, mediaPage)
	fmt.Println(strings.Repeat("-", 80))

	for _, item := range items {
		if len(item.Data) == 0 {
			continue
		}
		data := item.Data[0]
		date := data.DateCreated
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Printf("• %s [%s, %s]\n", data.Title, data.MediaType, date)
		if data.Center != "" {
			fmt.Printf("  Center: %s\n", data.Center)
		}
		for _, link := range item.Links {
			if link.Rel == "preview" {
				fmt.Printf("  Preview: %s\n", link.Href)
				break
			}
		}
	}

	return nil
}
