package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/moviemate/app"
	"github.com/s0up4200/moviemate/config"
	"github.com/s0up4200/moviemate/filter"
	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/prefs"
	"github.com/s0up4200/moviemate/render"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	client     *moviemate.Client
	api        moviemate.API
	breaker    *moviemate.BreakerClient
	store      *prefs.Store
	screen     *render.Screen
	filters    *filter.Manager
	controller *app.Controller

	// Command flags
	filterExpr string
	preset     string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviemate",
	Short: "Search movies and keep a personal collection from the terminal",
	Long: `moviemate is a CLI client for a movie catalog service. It searches movies,
shows popular titles and personal recommendations, and manages your
collection, either one command at a time or from an interactive shell.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion sets the version reported by the version and self-update commands
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
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

// initializeApp loads configuration and wires the client, state store,
// screen and controller
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	client, err = moviemate.NewClient(cfg.API.URL, logger,
		moviemate.WithTimeout(cfg.API.Timeout),
		moviemate.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)
	if err != nil {
		return fmt.Errorf("failed to create movie API client: %w", err)
	}

	api = client
	breaker = nil
	if cfg.Breaker.Enabled {
		breaker = moviemate.NewBreakerClient(client, moviemate.BreakerSettings{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}, logger)
		api = breaker
	}

	statePath := cfg.State.Path
	if statePath == "" {
		statePath = config.DefaultStatePath()
	}
	store, err = prefs.Load(statePath, cfg.State.DefaultLanguage, cfg.State.DefaultTheme)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}

	images := moviemate.NewImageResolver(cfg.Images.BaseURL, cfg.Images.Size, cfg.Images.Placeholder)
	screen = render.NewScreen(os.Stdout, render.NewCardBuilder(images))

	filters = filter.NewManager()
	if err := filters.RegisterPresets(presetExpressions(cfg.Filter.Presets)); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	controller = app.NewController(api, screen, store, logger, app.WithFilterManager(filters))

	logger.Debug().
		Str("api", client.BaseURL()).
		Str("state", store.Path()).
		Bool("breaker", cfg.Breaker.Enabled).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func presetExpressions(presets map[string]config.FilterPreset) map[string]string {
	out := make(map[string]string, len(presets))
	for name, p := range presets {
		out[name] = p.Expression
	}
	return out
}

// addFilterFlags registers the refinement flags shared by list commands
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the listed movies")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// getFilterExpression determines the refinement to apply.
// Priority: command line filter > preset > default
func getFilterExpression() (expression, presetName string) {
	if filterExpr != "" {
		return filterExpr, ""
	}
	if preset != "" {
		return "", preset
	}
	return cfg.Filter.DefaultExpression, ""
}

// applyRefinement installs the refinement selected by flags or config
func applyRefinement() error {
	expression, presetName := getFilterExpression()
	if expression == "" && presetName == "" {
		return nil
	}
	logger.Info().Str("filter", expression).Str("preset", presetName).Msg("Refining movie lists")
	return controller.Refine(expression, presetName)
}
