package main

import (
	"bizinsights/db"
	"bizinsights/internal/config"
	"bizinsights/internal/ingest"
	"bizinsights/internal/repository"
	"bizinsights/pkg/news"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Save today's top headlines into the daily bucket",
		Long:          "Fetches headlines from the configured sources and writes them into a per-day bucket named YYYYMMDD. Runs once unless --schedule is set.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), cfg)
			if err != nil {
				slog.Error("error running ingest", "error", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.NewsCountry, "country", cfg.NewsCountry, "NewsAPI country code")
	flags.StringVar(&cfg.NewsCategory, "category", "", "NewsAPI category; empty fetches all categories")
	flags.IntVar(&cfg.IngestPageSize, "page-size", cfg.IngestPageSize, "headlines to fetch per source")
	flags.StringSliceVar(&cfg.IngestSources, "sources", cfg.IngestSources, "headline sources (newsapi, finnhub, alphavantage, massive)")
	flags.StringVar(&cfg.IngestSchedule, "schedule", cfg.IngestSchedule, "cron spec; when empty the job runs once and exits")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}

	sources, err := ingest.NewSources(cfg.IngestSources, ingest.SourceKeys{
		NewsAPI:      cfg.NewsAPIKey,
		NewsAPIURL:   cfg.NewsAPIURL,
		Finnhub:      cfg.FinnhubAPIKey,
		AlphaVantage: cfg.AlphaVantageAPIKey,
		Massive:      cfg.MassiveAPIKey,
	}, news.HeadlineQuery{
		Country:  cfg.NewsCountry,
		Category: cfg.NewsCategory,
		PageSize: cfg.IngestPageSize,
	})
	if err != nil {
		return err
	}

	job := ingest.NewJob(sources, repository.NewHeadlineRepository(db.DB), ingest.Options{
		PageSize: cfg.IngestPageSize,
		Location: cfg.BucketLocation,
	})

	if cfg.IngestSchedule != "" {
		return ingest.Schedule(ctx, cfg.IngestSchedule, job)
	}

	_, err = job.Run(ctx)
	return err
}
