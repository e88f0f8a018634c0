package repository

import (
	"bizinsights/internal/model"
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestBucketName(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	instant := time.Date(2024, 3, 5, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "20240305", BucketName(instant))
	assert.Equal(t, "20240304", BucketName(instant.In(ny)))
}

func TestValidBucket(t *testing.T) {
	assert.Equal(t, true, ValidBucket("20240229"))
	assert.Equal(t, false, ValidBucket("20230229"))
	assert.Equal(t, false, ValidBucket("2024-02-29"))
	assert.Equal(t, false, ValidBucket(`2024"; DROP`))
	assert.Equal(t, false, ValidBucket(""))
}

func TestHeadlineRepository_SaveBatchAndList(t *testing.T) {
	repo := NewHeadlineRepository(newTestDB(t))
	ctx := context.Background()

	img := "http://img/1.png"
	batch := []model.Headline{
		{Title: "Older", URL: "http://x/1", ImageURL: &img, PublishedAt: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
		{Title: "Newer", URL: "http://x/2", PublishedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
	}

	saved, err := repo.SaveBatch(ctx, "20240305", batch)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	assert.Equal(t, 2, saved)

	saved, err = repo.SaveBatch(ctx, "20240305", batch)
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	assert.Equal(t, 0, saved)

	got, err := repo.List(ctx, "20240305")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assert.Equal(t, 2, len(got))
	assert.Equal(t, "Newer", got[0].Title)
	assert.Equal(t, true, got[0].ImageURL == nil)
	assert.Equal(t, img, *got[1].ImageURL)
	assert.Equal(t, false, got[0].SavedAt.IsZero())
}

func TestHeadlineRepository_Buckets(t *testing.T) {
	repo := NewHeadlineRepository(newTestDB(t))
	ctx := context.Background()

	for _, bucket := range []string{"20240301", "20240303", "20240302"} {
		if _, err := repo.SaveBatch(ctx, bucket, []model.Headline{{Title: "t", URL: "http://x/" + bucket}}); err != nil {
			t.Fatalf("save %s: %v", bucket, err)
		}
	}

	buckets, err := repo.Buckets(ctx)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	assert.Equal(t, []string{"20240303", "20240302", "20240301"}, buckets)
}

func TestHeadlineRepository_Errors(t *testing.T) {
	repo := NewHeadlineRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.SaveBatch(ctx, "today", nil)
	assert.Equal(t, ErrInvalidBucket, err)

	_, err = repo.List(ctx, "19990101")
	assert.Equal(t, ErrBucketNotFound, err)
}
