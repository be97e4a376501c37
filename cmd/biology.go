package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/astrodash/astrodash/osdr"
)

var (
	bioFrom int
	bioSize int
	bioType string
)

// overviewEntries caps how many experiments and missions the overview shows.
const overviewEntries = 10

// biologyCmd represents the biology command
var biologyCmd = &cobra.Command{
	Use:   "biology",
	Short: "Explore NASA's Open Science Data Repository",
	Long: `Explore space biology data in the Open Science Data Repository:
search datasets, inspect a study's metadata and files, and browse the
experiment and mission indexes. Without a subcommand an overview of
recent experiments and missions is shown.`,
	RunE: runBiologyOverview,
}

// biologySearchCmd represents the biology search command
var biologySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search OSDR datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBiologySearch,
}

// biologyStudyCmd represents the biology study command
var biologyStudyCmd = &cobra.Command{
	Use:   "study <identifier>",
	Short: "Show a study's metadata and files",
	Args:  cobra.ExactArgs(1),
	RunE:  runBiologyStudy,
}

func init() {
	rootCmd.AddCommand(biologyCmd)
	biologyCmd.AddCommand(biologySearchCmd)
	biologyCmd.AddCommand(biologyStudyCmd)

	biologySearchCmd.Flags().IntVar(&bioFrom, "from", 0, "result offset")
	biologySearchCmd.Flags().IntVar(&bioSize, "size", 20, "number of results")
	biologySearchCmd.Flags().StringVar(&bioType, "type", "cgene", "data source (cgene, nih_geo_gse, ebi_pride, mg_rast)")
}

func runBiologyOverview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var (
		experiments []osdr.Experiment
		missions    []osdr.Mission
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		experiments, err = osdrClient.Experiments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		missions, err = osdrClient.Missions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nRecent experiments (%d total):\n", len(experiments))
	fmt.Println(strings.Repeat("-", 80))
	for i, e := range experiments {
		if i >= overviewEntries {
			break
		}
		fmt.Printf("• %-14s %s\n", e.Identifier, e.Title)
	}

	fmt.Printf("\nRecent missions (%d total):\n", len(missions))
	fmt.Println(strings.Repeat("-", 80))
	for i, m := range missions {
		if i >= overviewEntries {
			break
		}
		span := ""
		if m.StartDate != "" {
			span = fmt.Sprintf(" (%s - %s)", m.StartDate, m.EndDate)
		}
		fmt.Printf("• %-14s %s%s\n", m.Identifier, m.Title, span)
	}

	return nil
}

func runBiologySearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	term := strings.Join(args, " ")

	logger.Info().Str("term", term).Msg("Searching OSDR datasets")

	results, err := osdrClient.SearchStudies(ctx, osdr.SearchRequest{
		Term: term,
		From: bioFrom,
		Size: bioSize,
		Type: bioType,
	})
	if err != nil {
		return err
	}

	if len(results.Studies) == 0 {
		fmt.Printf("No studies found for %q.\n", term)
		return nil
	}

	fmt.Printf("\n%d hits for %q, showing %d:\n", results.Hits, term, len(results.Studies))
	fmt.Println(strings.Repeat("-", 80))
	for _, study := range results.Studies {
		fmt.Printf("• %-14s %s\n", study.Identifier, study.Title)
		if study.Organism != "" {
			fmt.Printf("  Organism: %s\n", study.Organism)
		}
		if study.AssayType != "" {
			fmt.Printf("  Assay: %s\n", study.AssayType)
		}
		desc := study.Description
		if len(desc) > 160 {
			desc = desc[:157] + "..."
		}
		fmt.Printf("  %s\n", desc)
	}

	return nil
}

func runBiologyStudy(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	studyID := args[0]

	var (
		metadata map[string]any
		files    []osdr.StudyFile
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metadata, err = osdrClient.StudyMetadata(ctx, studyID)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = osdrClient.StudyFiles(ctx, studyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nStudy %s\n", studyID)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Metadata fields: %d\n", len(metadata))

	if len(files) == 0 {
		fmt.Println("No files attached.")
		return nil
	}

	fmt.Printf("\n%d files:\n", len(files))
	for _, file := range files {
		fmt.Printf("• %s (%d bytes)\n", file.Name, file.Size)
		if file.URL != "" {
			fmt.Printf("  %s\n", file.URL)
		}
	}

	return nil
}
