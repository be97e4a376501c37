package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// weatherCmd represents the weather command
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show Mars weather from the InSight lander",
	Long: `Show the latest per-sol weather readings from the InSight lander at
Elysium Planitia. The lander's sensors degraded over its mission, so
recent sols often report only partial data.`,
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	weather, err := nasaClient.InsightWeather(ctx)
	if err != nil {
		return err
	}

	if len(weather.SolKeys) == 0 {
		fmt.Println("No weather data available: the InSight feed is not reporting any sols.")
		return nil
	}

	fmt.Printf("\nMars weather at Elysium Planitia (%d sols):\n", len(weather.SolKeys))
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%-8s %-10s %14s %14s %12s\n", "SOL", "SEASON", "TEMP AVG", "PRESSURE", "WIND")
	fmt.Println(strings.Repeat("-", 72))

	for _, key := range weather.SolKeys {
		sol, ok := weather.Sols[key]
		if !ok {
			continue
		}
		temp, pressure, wind := "n/a", "n/a", "n/a"
		if sol.AT != nil {
			temp = fmt.Sprintf("%.1f °C", sol.AT.Average)
		}
		if sol.PRE != nil {
			pressure = fmt.Sprintf("%.1f Pa", sol.PRE.Average)
		}
		if sol.HWS != nil {
			wind = fmt.Sprintf("%.1f m/s", sol.HWS.Average)
		}
		fmt.Printf("%-8s %-10s %14s %14s %12s\n", key, sol.Season, temp, pressure, wind)
	}

	printRateLimit()
	return nil
}
