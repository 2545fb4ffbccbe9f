package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/unsc-scraper/internal/backends"
	"github.com/jonathan/unsc-scraper/internal/config"
	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/db"
	"github.com/jonathan/unsc-scraper/internal/fetch"
	"github.com/jonathan/unsc-scraper/internal/observability"
	"github.com/jonathan/unsc-scraper/internal/output"
	"github.com/jonathan/unsc-scraper/internal/schemas"
	"github.com/jonathan/unsc-scraper/internal/types"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every resolution from the index and write them to a file",
	Long: `Fetches the resolutions index, follows each year link in order and extracts one record per resolution row.
Any structural surprise aborts the run and nothing is written.

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments override config file values.`,
	RunE: runScrapeCmd,
}

var (
	scrapeConfigPath    string
	scrapeBackend       string
	scrapeBaseURL       string
	scrapeOutput        string
	scrapeFormat        string
	scrapeDelay         time.Duration
	scrapeTimeout       time.Duration
	scrapeUserAgent     string
	scrapeRespectRobots bool
	scrapeCleanText     bool
	scrapeHeadless      bool
	scrapeDatabaseURL   string
	scrapeSummary       bool
	scrapeVerbose       bool
)

func init() {
	// Config file flag (processed first)
	scrapeCommand.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	scrapeCommand.Flags().StringVarP(&scrapeBackend, "backend", "b", backends.NameGoquery, "Document backend: goquery, htmltree or browser")
	scrapeCommand.Flags().StringVar(&scrapeBaseURL, "base-url", crawling.DefaultBaseURL, "Resolutions index URL (must end with '/')")
	scrapeCommand.Flags().StringVarP(&scrapeOutput, "out", "o", output.DefaultPath, "Path to the output file")
	scrapeCommand.Flags().StringVar(&scrapeFormat, "format", "", "Output format: csv or json (defaults to the --out extension)")
	scrapeCommand.Flags().DurationVar(&scrapeDelay, "delay", crawling.DefaultDelay, "Pause before each year page request")
	scrapeCommand.Flags().DurationVar(&scrapeTimeout, "timeout", fetch.DefaultTimeout, "Per-request timeout")
	scrapeCommand.Flags().StringVar(&scrapeUserAgent, "user-agent", fetch.DefaultUserAgent, "User-Agent header sent with every request")
	scrapeCommand.Flags().BoolVar(&scrapeRespectRobots, "respect-robots", true, "Skip the run if robots.txt disallows a page")
	scrapeCommand.Flags().BoolVar(&scrapeCleanText, "clean-text", false, "Collapse whitespace in symbols and titles")
	scrapeCommand.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run the browser backend without a window")
	scrapeCommand.Flags().BoolVar(&scrapeSummary, "summary", false, "Print a per-year summary table when done")
	scrapeCommand.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for run persistence
	scrapeCommand.Flags().StringVar(&scrapeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(scrapeCommand)
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadScrapeConfig(cmd)
	if err != nil {
		return err
	}

	delay, err := cfg.ParsedDelay()
	if err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	timeout, err := cfg.ParsedTimeout()
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	format, err := output.FormatForPath(cfg.Out, cfg.Format)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintRunHeader(observability.RunInfo{
			BaseURL:       cfg.BaseURL,
			Backend:       cfg.Backend,
			OutputPath:    cfg.Out,
			Format:        string(format),
			Delay:         delay,
			RespectRobots: cfg.RobotsEnabled(),
			DatabaseSink:  cfg.DatabaseURL != "",
		})
	}

	fetchOpts := &fetch.Options{
		Timeout:   timeout,
		UserAgent: cfg.UserAgent,
		Verbose:   cfg.Verbose,
	}
	registry := backends.DefaultRegistry(&backends.Options{
		Fetch: fetchOpts,
		Browser: &fetch.BrowserOptions{
			Headless:    cfg.HeadlessEnabled(),
			PageTimeout: timeout,
			ExecPath:    os.Getenv("CHROME_PATH"),
			UserAgent:   cfg.UserAgent,
			Verbose:     cfg.Verbose,
		},
	})

	backend, err := registry.New(ctx, cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to start %s backend: %w", cfg.Backend, err)
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			log.Printf("[CRAWL] Failed to close %s backend: %v", cfg.Backend, closeErr)
		}
	}()

	opts := &crawling.Options{
		BaseURL:     cfg.BaseURL,
		Delay:       delay,
		Exceptions:  cfg.ExceptionTable(),
		CleanText:   cfg.CleanText,
		Progress:    os.Stdout,
		Diagnostics: os.Stderr,
		Verbose:     cfg.Verbose,
	}
	if cfg.RobotsEnabled() {
		opts.Policy = fetch.NewRobotsChecker(fetch.NewClient(fetchOpts))
	}
	if cfg.Verbose {
		opts.OnYear = func(entry types.YearEntry, records []types.ResolutionRecord) {
			_, _ = fmt.Fprintf(os.Stdout, "  %d: %d resolutions\n", entry.Year, len(records))
		}
	}

	start := time.Now()
	set, err := crawling.Crawl(ctx, backend, opts)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	elapsed := time.Since(start)

	if err := writeOutput(cfg, format, set); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Wrote %d resolutions to %s\n", len(set), cfg.Out)

	if cfg.DatabaseURL != "" {
		if err := saveRun(ctx, cfg, set); err != nil {
			return err
		}
	}

	if cfg.Summary {
		printer.PrintSummary(set, elapsed)
	}

	return nil
}

// loadScrapeConfig merges the config file, explicitly set flags and defaults, in
// increasing order of precedence for the first two.
func loadScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if scrapeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return nil, err
		}

		cfg = *loadedCfg
		if scrapeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", scrapeConfigPath)
		}
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = scrapeBackend
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = scrapeBaseURL
	}
	if flags.Changed("out") {
		cfg.Out = scrapeOutput
	}
	if flags.Changed("format") {
		cfg.Format = scrapeFormat
	}
	if flags.Changed("delay") {
		cfg.Delay = scrapeDelay.String()
	}
	if flags.Changed("timeout") {
		cfg.Timeout = scrapeTimeout.String()
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = scrapeUserAgent
	}
	if flags.Changed("respect-robots") {
		cfg.RespectRobots = &scrapeRespectRobots
	}
	if flags.Changed("clean-text") {
		cfg.CleanText = scrapeCleanText
	}
	if flags.Changed("headless") {
		cfg.Headless = &scrapeHeadless
	}
	if flags.Changed("summary") {
		cfg.Summary = scrapeSummary
	}
	if flags.Changed("verbose") {
		cfg.Verbose = scrapeVerbose
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = scrapeDatabaseURL
	}

	merged := cfg.MergeWithDefaults(config.Defaults())

	// Database URL handling (optional sink)
	if merged.DatabaseURL == "" {
		merged.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func writeOutput(cfg *config.Config, format output.Format, set types.ResolutionSet) error {
	switch format {
	case output.FormatJSON:
		doc := output.NewDocument(cfg.BaseURL, cfg.Backend, time.Now().UTC(), set)
		var encoded bytes.Buffer
		if err := output.WriteJSONTo(&encoded, doc); err != nil {
			return err
		}
		// Checked before writing so a rejected document never reaches disk
		if err := schemas.ValidateResolutionSet(encoded.Bytes()); err != nil {
			return fmt.Errorf("JSON output does not match schema: %w", err)
		}
		if err := output.WriteJSON(cfg.Out, doc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	default:
		if err := output.WriteCSV(cfg.Out, set); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func saveRun(ctx context.Context, cfg *config.Config, set types.ResolutionSet) error {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	runID, err := database.CreateRun(ctx, cfg.BaseURL, cfg.Backend)
	if err != nil {
		return err
	}

	if _, err := database.SaveResolutions(ctx, runID, set); err != nil {
		if completeErr := database.CompleteRun(ctx, runID, db.RunStatusFailed, 0); completeErr != nil {
			log.Printf("[DB] Failed to mark run %s as failed: %v", runID, completeErr)
		}
		return err
	}

	if err := database.CompleteRun(ctx, runID, db.RunStatusCompleted, len(set)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Saved run %s to database\n", runID)
	return nil
}
