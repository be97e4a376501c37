package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/nasa"
)

var (
	roverName   string
	roverSol    int
	roverDate   string
	roverCamera string
	roverPage   int
)

// roverCmd represents the rover command
var roverCmd = &cobra.Command{
	Use:   "rover",
	Short: "Browse Mars rover photos and mission manifests",
}

// roverPhotosCmd represents the rover photos command
var roverPhotosCmd = &cobra.Command{
	Use:   "photos",
	Short: "List photos taken by a Mars rover",
	Long: `List photos taken by a Mars rover on a given sol or Earth date,
optionally restricted to a single camera. Camera codes (NAVCAM, FHAZ,
MAST, ...) are accepted in any case.`,
	RunE: runRoverPhotos,
}

// roverManifestCmd represents the rover manifest command
var roverManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Show a rover's mission manifest",
	RunE:  runRoverManifest,
}

func init() {
	rootCmd.AddCommand(roverCmd)
	roverCmd.AddCommand(roverPhotosCmd)
	roverCmd.AddCommand(roverManifestCmd)

	roverCmd.PersistentFlags().StringVar(&roverName, "rover", "curiosity", "rover name (curiosity, opportunity, spirit, perseverance)")
	roverPhotosCmd.Flags().IntVar(&roverSol, "sol", 0, "Martian sol to list photos for")
	roverPhotosCmd.Flags().StringVar(&roverDate, "date", "", "Earth date to list photos for (YYYY-MM-DD)")
	roverPhotosCmd.Flags().StringVar(&roverCamera, "camera", "", "camera code to filter by")
	roverPhotosCmd.Flags().IntVar(&roverPage, "page", 1, "result page (25 photos per page)")
}

func runRoverPhotos(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := nasa.RoverPhotosRequest{
		Rover:     roverName,
		EarthDate: roverDate,
		Camera:    roverCamera,
		Page:      roverPage,
	}
	// Sol 0 (landing day) is valid, so only forward the sol when the flag
	// was actually given.
	if cmd.Flags().Changed("sol") {
		sol := roverSol
		req.Sol = &sol
	}

	photos, err := nasaClient.RoverPhotos(ctx, req)
	if err != nil {
		return err
	}

	if len(photos) == 0 {
		fmt.Println("No photos found for these filters. Try another sol or camera; the manifest shows which sols have photos.")
		return nil
	}

	fmt.Printf("\nFound %d photos:\n", len(photos))
	fmt.Println(strings.Repeat("-", 80))
	for _, photo := range photos {
		fmt.Printf("• [%s] sol %d, %s\n  %s\n", photo.Camera.Name, photo.Sol, photo.EarthDate, photo.ImgSrc)
	}

	printRateLimit()
	return nil
}

func runRoverManifest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	manifest, err := nasaClient.RoverManifest(ctx, roverName)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", manifest.Name)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Status:       %s\n", manifest.Status)
	fmt.Printf("Launched:     %s\n", manifest.LaunchDate)
	fmt.Printf("Landed:       %s\n", manifest.LandingDate)
	fmt.Printf("Latest sol:   %d (%s)\n", manifest.MaxSol, manifest.MaxDate)
	fmt.Printf("Total photos: %d\n", manifest.TotalPhotos)

	printRateLimit()
	return nil
}
