// Command gridiron scrapes historical box scores into a sqlite archive,
// exports dashboard JSON, replicates the archive to Turso and serves a
// read-only API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/gridiron/internal/api/rest"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/export"
	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/replicate"
	"github.com/fortuna/gridiron/internal/scrape"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridiron",
		Short:        "Historical box-score archive scraper and API",
		SilenceUsage: true,
	}
	root.AddCommand(scrapeCmd(), exportCmd(), uploadCmd(), serveCmd())
	return root
}

func scrapeCmd() *cobra.Command {
	var (
		full        bool
		season      int
		start       int
		end         int
		incremental bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape seasons from the primary source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, repos, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			runner, cleanup, err := buildRunner(cfg, repos)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			if incremental {
				summary, err := runner.Incremental(ctx, force)
				if err != nil {
					return err
				}
				printSummaries([]scrape.Summary{summary})
				return nil
			}

			startYear, endYear := cfg.FirstSeason, scrape.CurrentSeason()
			switch {
			case season != 0:
				startYear, endYear = season, season
			case full:
				if start != 0 {
					startYear = start
				}
				if end != 0 {
					endYear = end
				}
			case start != 0:
				startYear = start
				if end != 0 {
					endYear = end
				}
			default:
				return fmt.Errorf("one of --full, --season, --start or --incremental is required")
			}

			log.Printf("[gridiron] scraping seasons %d to %d (force=%v)", startYear, endYear, force)
			summaries, err := runner.ScrapeRange(ctx, startYear, endYear, force)
			if err != nil {
				return err
			}
			printSummaries(summaries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "scrape all seasons from the first season")
	cmd.Flags().IntVar(&season, "season", 0, "scrape a single season")
	cmd.Flags().IntVar(&start, "start", 0, "start year")
	cmd.Flags().IntVar(&end, "end", 0, "end year (default: current season)")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "scrape the current season only")
	cmd.Flags().BoolVar(&force, "force", false, "re-scrape games that already have data")

	cmd.AddCommand(scrapeFallbackCmd())
	return cmd
}

func scrapeFallbackCmd() *cobra.Command {
	var (
		season int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "fdb",
		Short: "Scrape a season from the fallback source",
		RunE: func(cmd *cobra.Command, args []string) error {
			if season == 0 {
				return fmt.Errorf("--season is required")
			}

			cfg, db, repos, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			runner, cleanup, err := buildRunner(cfg, repos)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			summary, err := runner.ScrapeFallbackSeason(ctx, season, force)
			if err != nil {
				return err
			}
			printSummaries([]scrape.Summary{summary})
			return nil
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "season to scrape")
	cmd.Flags().BoolVar(&force, "force", false, "re-scrape games that already have data")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Regenerate dashboard JSON from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, _, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			log.Printf("[gridiron] exporting JSON to %s", cfg.OutputDir)
			return export.NewExporter(db.DB(), cfg).Export(cfg.OutputDir)
		},
	}
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Replicate the database to Turso",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, _, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			if cfg.TursoURL == "" || cfg.TursoToken == "" {
				return fmt.Errorf("TURSO_DATABASE_URL and TURSO_AUTH_TOKEN must be set")
			}

			ctx, cancel := signalContext()
			defer cancel()

			log.Printf("[gridiron] uploading %s to %s", db.Path(), cfg.TursoURL)
			return replicate.NewReplicator(db.DB(), cfg.TursoURL, cfg.TursoToken).Upload(ctx)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, repos, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			server := rest.NewServer(cfg.APIPort, db, repos, cfg.CORSOrigins)

			ctx, cancel := signalContext()
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			log.Printf("[gridiron] shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}
}

func open() (*config.Config, *store.Database, *repository.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := store.NewDatabase(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Printf("[gridiron] database: %s", db.Path())
	return cfg, db, repository.NewStore(db), nil
}

// buildRunner assembles the fetch stack: per-source clients, the politeness
// rate limit, and the optional Redis page cache.
func buildRunner(cfg *config.Config, repos *repository.Store) (*scrape.Runner, func(), error) {
	var pfaFetcher fetch.Fetcher = fetch.NewHTTPFetcher(cfg.PFAUserAgent)
	// FootballDB blocks Go's client fingerprint; curl gets through.
	var fdbFetcher fetch.Fetcher = fetch.NewCurlFetcher(cfg.FDBUserAgent)

	cleanup := func() {}
	if cfg.RedisURL != "" {
		pages, err := cache.NewPageCache(cfg.RedisURL, cfg.PageCacheTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect page cache: %w", err)
		}
		pfaFetcher = fetch.NewCached(pfaFetcher, pages)
		fdbFetcher = fetch.NewCached(fdbFetcher, pages)
		cleanup = func() { pages.Close() }
	}

	pfaFetcher = fetch.NewLimited(pfaFetcher, cfg.RequestDelay)
	fdbFetcher = fetch.NewLimited(fdbFetcher, cfg.RequestDelay)

	runner := scrape.NewRunner(pfaFetcher, fdbFetcher, scrape.NewRepositoryStore(repos), cfg)
	return runner, cleanup, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printSummaries(summaries []scrape.Summary) {
	totalGames, totalBox, totalSkip, totalErr := 0, 0, 0, 0
	for _, s := range summaries {
		totalGames += s.Games
		totalBox += s.Boxscores
		totalSkip += s.Skipped
		totalErr += s.Errors
	}
	log.Printf("[gridiron] scrape complete: %d seasons, %d games, %d box scores, %d skipped, %d errors",
		len(summaries), totalGames, totalBox, totalSkip, totalErr)
}
