package repository

import (
	"bizinsights/internal/model"
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

const newsColumnsPrefixed = `n.id, n.external_id, n.title, n.summary, n.content, n.image_url,
	n.published_at, n.source, n.url, n.category, n.created_at, n.updated_at`

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// UpsertByURL stores n, refreshing the mutable fields when an article with
// the same URL already exists. n.ID and timestamps are filled in.
func (r *NewsRepository) UpsertByURL(ctx context.Context, n *model.News) error {
	if n.Category == "" {
		n.Category = model.CategoryGeneral
	}
	if !model.ValidCategory(n.Category) {
		return fmt.Errorf("upsert news: invalid category %q", n.Category)
	}
	if n.Summary == nil {
		n.Summary = []string{}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO news AS n (external_id, title, summary, content, image_url, published_at, source, url, category)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (url) DO UPDATE SET
			external_id = EXCLUDED.external_id,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			content = EXCLUDED.content,
			image_url = EXCLUDED.image_url,
			updated_at = now()
		RETURNING n.id, n.category, n.created_at, n.updated_at
	`, n.ExternalID, n.Title, pq.Array(n.Summary), n.Content, n.ImageURL, n.PublishedAt, n.Source, n.URL, n.Category).
		Scan(&n.ID, &n.Category, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert news: %w", err)
	}

	return nil
}

func (r *NewsRepository) GetByExternalID(ctx context.Context, externalID string) (*model.News, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+newsColumnsPrefixed+`
		FROM news n
		WHERE n.external_id = $1
		ORDER BY n.updated_at DESC
		LIMIT 1
	`, externalID)

	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}

	return n, nil
}

// Save adds the article to the user's saved list. Saving twice is a no-op.
func (r *NewsRepository) Save(ctx context.Context, uid string, newsID int64) error {
	return r.link(ctx, "saved_news", uid, newsID)
}

// Like adds the article to the user's liked list. Liking twice is a no-op.
func (r *NewsRepository) Like(ctx context.Context, uid string, newsID int64) error {
	return r.link(ctx, "liked_news", uid, newsID)
}

func (r *NewsRepository) link(ctx context.Context, table, uid string, newsID int64) error {
	userID, err := userIDByUID(ctx, r.db, uid)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO `+table+`(user_id, news_id)
		VALUES($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, newsID)
	if isPQCode(err, pqForeignKeyViolation) {
		return ErrNewsNotFound
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}

	return nil
}

func scanNews(row scanner) (*model.News, error) {
	var n model.News
	err := row.Scan(&n.ID, &n.ExternalID, &n.Title, pq.Array(&n.Summary), &n.Content, &n.ImageURL,
		&n.PublishedAt, &n.Source, &n.URL, &n.Category, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if n.Summary == nil {
		n.Summary = []string{}
	}
	return &n, nil
}
