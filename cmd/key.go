package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/keystore"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the NASA API key",
	Long: `Manage the NASA API key used by the api.nasa.gov endpoints. A
personal key (free at https://api.nasa.gov) raises the hourly quota
from the demo key's handful of requests. A key set here is persisted
for future runs unless a deployment-time key (config file or
NASA_API_KEY) overrides it.`,
}

// keySetCmd represents the key set command
var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Set and persist a NASA API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeySet,
}

// keyShowCmd represents the key show command
var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active key and last observed rate limit",
	RunE:  runKeyShow,
}

// keyClearCmd represents the key clear command
var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved key and fall back to the demo key",
	RunE:  runKeyClear,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}

	if err := store.SetKey(key); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	if key == keystore.DemoKey {
		fmt.Println("Using the shared demo key.")
	} else {
		fmt.Println("API key saved.")
	}
	if cfg.NASA.APIKey != "" {
		fmt.Println("Note: a deployment-time key is configured and takes priority on the next run.")
	}
	return nil
}

func runKeyShow(cmd *cobra.Command, args []string) error {
	fmt.Printf("Active key: %s\n", maskKey(store.Key()))
	if store.IsDemo() {
		fmt.Printf("This is the shared demo key (%d requests per hour).\n", cfg.Limits.DemoHourly)
	} else {
		fmt.Printf("Personal key (%d requests per hour).\n", cfg.Limits.KeyHourly)
	}

	if snapshot, ok := store.RateLimit(); ok {
		fmt.Printf("Last observed rate limit: %d/%d remaining", snapshot.Remaining, snapshot.Limit)
		if snapshot.ResetTime != "" {
			fmt.Printf(" (resets %s)", snapshot.ResetTime)
		}
		fmt.Println()
	} else {
		fmt.Println("No rate-limit information observed yet; it appears after the first API call.")
	}
	return nil
}

func runKeyClear(cmd *cobra.Command, args []string) error {
	if err := store.SetKey(keystore.DemoKey); err != nil {
		return fmt.Errorf("failed to clear key: %w", err)
	}
	fmt.Println("Saved key cleared; using the shared demo key.")
	return nil
}

// maskKey hides all but the edges of a key so "key show" output is safe to
// paste in bug reports.
func maskKey(key string) string {
	if key == keystore.DemoKey {
		return key
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
