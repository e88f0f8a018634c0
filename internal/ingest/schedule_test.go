package ingest

import (
	"bizinsights/pkg/news"
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestSchedule_InvalidSpec(t *testing.T) {
	job := NewJob(nil, newFakeStore(), Options{})

	err := Schedule(context.Background(), "every day at noon", job)

	assert.NotEqual(t, nil, err)
}

func TestSchedule_RunsUntilCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scheduler timing test in short mode")
	}

	source := &fakeSource{name: "NewsAPI", articles: []news.Article{{Title: "t", URL: "https://x/1"}}}
	store := newFakeStore()
	job := NewJob([]news.HeadlineSource{source}, store, Options{Location: time.UTC})

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	err := Schedule(ctx, "@every 1s", job)

	assert.Equal(t, nil, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	var saved int
	for _, headlines := range store.buckets {
		saved += len(headlines)
	}
	assert.Equal(t, true, saved >= 1)
}
