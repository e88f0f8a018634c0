package repository

import (
	"bizinsights/internal/model"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	headlineSchema = "headlines"
	bucketLayout   = "20060102"
)

// HeadlineRepository stores ingested headlines in one table per calendar
// day, named YYYYMMDD, under the headlines schema.
type HeadlineRepository struct {
	db *sql.DB
}

func NewHeadlineRepository(db *sql.DB) *HeadlineRepository {
	return &HeadlineRepository{db: db}
}

// BucketName returns the bucket for the calendar date of t in t's location.
func BucketName(t time.Time) string {
	return t.Format(bucketLayout)
}

func ValidBucket(name string) bool {
	if len(name) != len(bucketLayout) {
		return false
	}
	_, err := time.Parse(bucketLayout, name)
	return err == nil
}

func bucketTable(bucket string) string {
	return pq.QuoteIdentifier(headlineSchema) + "." + pq.QuoteIdentifier(bucket)
}

// SaveBatch writes headlines into bucket in a single transaction, creating
// the bucket on first use. Headlines whose URL is already in the bucket are
// skipped, so re-running an ingest on the same day is safe.
func (r *HeadlineRepository) SaveBatch(ctx context.Context, bucket string, headlines []model.Headline) (int, error) {
	if !ValidBucket(bucket) {
		return 0, ErrInvalidBucket
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	table := bucketTable(bucket)

	_, err = tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+table+` (
			id           BIGSERIAL PRIMARY KEY,
			title        TEXT NOT NULL,
			url          TEXT NOT NULL UNIQUE,
			image_url    TEXT,
			published_at TIMESTAMPTZ,
			saved_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+table+`(title, url, image_url, published_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (url) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var saved int
	for _, h := range headlines {
		var publishedAt sql.NullTime
		if !h.PublishedAt.IsZero() {
			publishedAt = sql.NullTime{Time: h.PublishedAt, Valid: true}
		}

		res, err := stmt.ExecContext(ctx, h.Title, h.URL, h.ImageURL, publishedAt)
		if err != nil {
			return 0, fmt.Errorf("insert headline %q: %w", h.URL, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		saved += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return saved, nil
}

func (r *HeadlineRepository) List(ctx context.Context, bucket string) ([]model.Headline, error) {
	if !ValidBucket(bucket) {
		return nil, ErrInvalidBucket
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT to_regclass($1) IS NOT NULL`, bucketTable(bucket)).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup bucket: %w", err)
	}
	if !exists {
		return nil, ErrBucketNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, url, image_url, published_at, saved_at
		FROM `+bucketTable(bucket)+`
		ORDER BY published_at DESC NULLS LAST, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}
	defer rows.Close()

	headlines := []model.Headline{}
	for rows.Next() {
		var h model.Headline
		var imageURL sql.NullString
		var publishedAt sql.NullTime
		if err := rows.Scan(&h.ID, &h.Title, &h.URL, &imageURL, &publishedAt, &h.SavedAt); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			h.ImageURL = &imageURL.String
		}
		if publishedAt.Valid {
			h.PublishedAt = publishedAt.Time
		}
		headlines = append(headlines, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return headlines, nil
}

// Buckets lists existing bucket names, newest first.
func (r *HeadlineRepository) Buckets(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name DESC
	`, headlineSchema)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	defer rows.Close()

	buckets := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if ValidBucket(name) {
			buckets = append(buckets, name)
		}
	}

	return buckets, rows.Err()
}
