package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/menuscraper/backend/config"
	"github.com/menuscraper/backend/internal/domain"
	"github.com/menuscraper/backend/internal/infrastructure/browser"
	"github.com/menuscraper/backend/internal/infrastructure/storage"
	"github.com/menuscraper/backend/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	outputPath  string
	headless    bool
	waitTimeout time.Duration
	chromePath  string
	showSummary bool
)

var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "collector scrapes the restaurant menu into a JSON catalog.",
	Long: `collector opens the menu index in headless Chrome, visits every product page,
expands its nutrition details and writes all products to a JSON document keyed
by product slug. The previous document is replaced only when the whole run succeeds.`,
	SilenceUsage: true,
	RunE:         runCollect,
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Catalog document to write (default: catalog.path from config)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "Run Chrome without a window")
	rootCmd.Flags().DurationVar(&waitTimeout, "timeout", 0, "How long to wait for the nutrition details button (default: collector.wait_timeout from config)")
	rootCmd.Flags().StringVar(&chromePath, "chrome", "", "Path to the Chrome executable")
	rootCmd.Flags().BoolVar(&showSummary, "summary", true, "Print a table of scraped products")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if outputPath != "" {
		cfg.Catalog.Path = outputPath
	}
	if cmd.Flags().Changed("headless") {
		cfg.Collector.Headless = headless
	}
	if waitTimeout > 0 {
		cfg.Collector.WaitTimeout = waitTimeout
	}

	launcher := browser.NewChromeLauncher(browser.Options{
		Headless:  cfg.Collector.Headless,
		UserAgent: cfg.Collector.UserAgent,
		ExecPath:  chromePath,
	})
	store := storage.NewJSONFileStore(cfg.Catalog.Path)

	collector := usecase.NewCollector(launcher, store, usecase.CollectorConfig{
		MenuURL:     cfg.Collector.MenuURL(),
		WaitTimeout: cfg.Collector.WaitTimeout,
		RenderDelay: cfg.Collector.RenderDelay,
	})

	log.Printf("Collecting %s -> %s", cfg.Collector.MenuURL(), cfg.Catalog.Path)
	started := time.Now()

	catalog, err := collector.Run(cmd.Context())
	if err != nil {
		if usecase.IsStructuralFailure(err) {
			return fmt.Errorf("page layout changed, update the selector table: %w", err)
		}
		return err
	}

	log.Printf("Collected %d products in %s", len(catalog), time.Since(started).Round(time.Millisecond))

	if showSummary {
		printSummary(catalog)
	}
	return nil
}

// printSummary renders one row per product, sorted by slug
func printSummary(catalog domain.Catalog) {
	slugs := make([]string, 0, len(catalog))
	for slug := range catalog {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Slug", "Name", "Calories", "Fats", "Carbs", "Proteins", "Portion"})
	for _, slug := range slugs {
		p := catalog[slug]
		t.AppendRow(table.Row{slug, p.Name, p.Calories, p.Fats, p.Carbs, p.Proteins, p.Portion})
	}
	t.AppendFooter(table.Row{"", "Total", len(catalog)})
	t.Render()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
