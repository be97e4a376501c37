package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/nasa"
)

var (
	techCollection string
	techPage       int
)

// techCmd represents the techtransfer command
var techCmd = &cobra.Command{
	Use:   "techtransfer [query]",
	Short: "Search NASA Technology Transfer records",
	Long: `Search NASA's Technology Transfer catalogs: patents, issued patents,
software releases and spinoff stories.`,
	RunE: runTechTransfer,
}

func init() {
	rootCmd.AddCommand(techCmd)

	techCmd.Flags().StringVar(&techCollection, "collection", "patent", "catalog to search (patent, patent_issued, software, spinoff)")
	techCmd.Flags().IntVar(&techPage, "page", 1, "result page")
}

func runTechTransfer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	response, err := nasaClient.TechTransfer(ctx, nasa.TechTransferRequest{
		Collection: nasa.TechTransferCollection(techCollection),
		Query:      strings.Join(args, " "),
		Page:       techPage,
	})
	if err != nil {
		return err
	}

	records := response.Records()
	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Printf("\n%d of %d %s records:\n", len(records), response.Total, techCollection)
	fmt.Println(strings.Repeat("-", 80))
	for _, record := range records {
		fmt.Printf("• %s", record.Title)
		if record.CaseNumber != "" {
			fmt.Printf(" (%s)", record.CaseNumber)
		}
		fmt.Println()
		if record.Description != "" {
			desc := record.Description
			if len(desc) > 200 {
				desc = desc[:197] + "..."
			}
			fmt.Printf("  %s\n", desc)
		}
	}

	printRateLimit()
	return nil
}
