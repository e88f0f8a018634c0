package ingest

import (
	"bizinsights/internal/model"
	"bizinsights/internal/repository"
	"bizinsights/pkg/news"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

type HeadlineStore interface {
	SaveBatch(ctx context.Context, bucket string, headlines []model.Headline) (int, error)
}

type Options struct {
	PageSize int
	Location *time.Location
}

// Job pulls headlines from every source and writes them into the daily
// bucket for the current date.
type Job struct {
	sources  []news.HeadlineSource
	store    HeadlineStore
	pageSize int
	location *time.Location
	now      func() time.Time
}

type Result struct {
	Bucket  string
	Fetched int
	Saved   int
	Failed  []string
}

func NewJob(sources []news.HeadlineSource, store HeadlineStore, opts Options) *Job {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Job{
		sources:  sources,
		store:    store,
		pageSize: opts.PageSize,
		location: opts.Location,
		now:      time.Now,
	}
}

func (j *Job) Run(ctx context.Context) (Result, error) {
	res := Result{Bucket: repository.BucketName(j.now().In(j.location))}

	if len(j.sources) == 0 {
		return res, errors.New("no headline sources configured")
	}

	fetched := make([][]news.Article, len(j.sources))
	errs := make([]error, len(j.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range j.sources {
		g.Go(func() error {
			articles, err := source.Fetch(gctx, j.pageSize)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", source.Name(), err)
				return nil
			}
			fetched[i] = articles
			return nil
		})
	}
	g.Wait()

	var headlines []model.Headline
	seen := map[string]bool{}

	for i, source := range j.sources {
		if errs[i] != nil {
			slog.Error("error fetching headlines", "source", source.Name(), "error", errs[i])
			res.Failed = append(res.Failed, source.Name())
			continue
		}

		for _, a := range fetched[i] {
			if a.URL == "" || a.Title == "" || seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			headlines = append(headlines, toHeadline(a))
		}
		slog.Info("headlines fetched", "source", source.Name(), "count", len(fetched[i]))
	}

	res.Fetched = len(headlines)

	if len(res.Failed) == len(j.sources) {
		return res, fmt.Errorf("all headline sources failed: %w", errors.Join(errs...))
	}

	if len(headlines) == 0 {
		slog.Warn("no headlines to save", "bucket", res.Bucket)
		return res, nil
	}

	saved, err := j.store.SaveBatch(ctx, res.Bucket, headlines)
	if err != nil {
		return res, fmt.Errorf("save headlines: %w", err)
	}
	res.Saved = saved

	slog.Info("news saved", "bucket", res.Bucket, "fetched", res.Fetched, "saved", res.Saved)

	return res, nil
}

func toHeadline(a news.Article) model.Headline {
	h := model.Headline{
		Title:       a.Title,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
	}
	if a.ImageURL != "" {
		imageURL := a.ImageURL
		h.ImageURL = &imageURL
	}
	return h
}
