package repository

import (
	"bizinsights/internal/model"
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestNewsRepository_UpsertByURL(t *testing.T) {
	repo := NewNewsRepository(newTestDB(t))
	ctx := context.Background()

	n := &model.News{
		ExternalID:  "fed-holds",
		Title:       "Fed holds",
		Summary:     []string{"Rates unchanged", "Dollar steady"},
		URL:         "http://x/fed-holds",
		Source:      "Reuters",
		PublishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.UpsertByURL(ctx, n); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	assert.Equal(t, model.CategoryGeneral, n.Category)

	again := &model.News{
		ExternalID:  "fed-holds",
		Title:       "Fed holds rates",
		URL:         "http://x/fed-holds",
		Source:      "Reuters",
		PublishedAt: n.PublishedAt,
		Category:    model.CategoryBusiness,
	}
	if err := repo.UpsertByURL(ctx, again); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	assert.Equal(t, n.ID, again.ID)

	got, err := repo.GetByExternalID(ctx, "fed-holds")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assert.Equal(t, "Fed holds rates", got.Title)
	assert.Equal(t, []string{}, got.Summary)
	assert.Equal(t, model.CategoryGeneral, got.Category)
}

func TestNewsRepository_UpsertInvalidCategory(t *testing.T) {
	repo := NewNewsRepository(newTestDB(t))

	err := repo.UpsertByURL(context.Background(), &model.News{Title: "x", URL: "http://x", Category: "sports"})

	assert.NotEqual(t, nil, err)
}

func TestNewsRepository_GetByExternalIDMissing(t *testing.T) {
	repo := NewNewsRepository(newTestDB(t))

	n, err := repo.GetByExternalID(context.Background(), "missing")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, n == nil)
}

func TestNewsRepository_SaveIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	repo := NewNewsRepository(conn)
	ctx := context.Background()

	if _, err := users.Upsert(ctx, model.UserInput{UID: "u1", Email: "a@example.com", DisplayName: "Ada"}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	n := &model.News{ExternalID: "a1", Title: "First", URL: "http://x/a1", Source: "Reuters", PublishedAt: time.Now()}
	if err := repo.UpsertByURL(ctx, n); err != nil {
		t.Fatalf("upsert news: %v", err)
	}

	assert.Equal(t, nil, repo.Save(ctx, "u1", n.ID))
	assert.Equal(t, nil, repo.Save(ctx, "u1", n.ID))

	user, err := users.GetByUID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assert.Equal(t, []int64{n.ID}, user.SavedNews)
}

func TestNewsRepository_LinkErrors(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	repo := NewNewsRepository(conn)
	ctx := context.Background()

	assert.Equal(t, ErrUserNotFound, repo.Like(ctx, "nobody", 1))

	if _, err := users.Upsert(ctx, model.UserInput{UID: "u1", Email: "a@example.com", DisplayName: "Ada"}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	assert.Equal(t, ErrNewsNotFound, repo.Like(ctx, "u1", 999))
}
