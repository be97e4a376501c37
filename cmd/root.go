package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/astrodash/astrodash/config"
	"github.com/astrodash/astrodash/eonet"
	"github.com/astrodash/astrodash/images"
	"github.com/astrodash/astrodash/keystore"
	"github.com/astrodash/astrodash/nasa"
	"github.com/astrodash/astrodash/osdr"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	store   *keystore.Store

	nasaClient   *nasa.Client
	imagesClient *images.Client
	eonetClient  *eonet.Client
	osdrClient   *osdr.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "astrodash",
	Short: "A terminal dashboard for NASA's public APIs",
	Long: `astrodash browses NASA's public REST APIs from the terminal: the
astronomy picture of the day, Mars rover photos, near-Earth asteroids,
Mars weather, Earth imagery, natural-event tracking, the media library,
technology-transfer records and the Open Science Data Repository.

Most pages work without configuration using NASA's shared demo key,
which is limited to a handful of requests per hour. Set a personal key
with "astrodash key set" or the NASA_API_KEY environment variable.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information for the CLI.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads configuration, builds the logger, resolves the API key
// and constructs the upstream clients. Clients capture the key at this point:
// a key change during a run does not affect calls already built.
func initializeApp(cmd *cobra.Command, args []string) error {
	// A .env file is optional deployment sugar for NASA_API_KEY.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	storage, err := keystore.NewFileStorage("")
	if err != nil {
		return fmt.Errorf("failed to open key storage: %w", err)
	}
	store = keystore.New(cfg.NASA.APIKey, storage, logger)

	if store.IsDemo() {
		logger.Debug().Msg("no API key configured, using the shared demo key")
	}

	nasaClient, err = nasa.NewClient(store.Key(), logger,
		nasa.WithTimeout(cfg.Client.Timeout),
		nasa.WithQuotas(nasa.Quotas{
			DemoHourly: cfg.Limits.DemoHourly,
			KeyHourly:  cfg.Limits.KeyHourly,
		}),
		nasa.WithRateLimitObserver(store.RecordRateLimit),
	)
	if err != nil {
		return fmt.Errorf("failed to create NASA client: %w", err)
	}

	imagesClient = images.NewClient(logger, images.WithTimeout(cfg.Client.SearchTimeout))
	eonetClient = eonet.NewClient(logger, eonet.WithTimeout(cfg.Client.Timeout))
	osdrClient = osdr.NewClient(logger, osdr.WithTimeout(cfg.Client.SearchTimeout))

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when configured and stderr is a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
