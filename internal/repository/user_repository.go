package repository

import (
	"bizinsights/internal/model"
	"context"
	"database/sql"
	"fmt"
)

const userColumns = `id, uid, email, display_name, photo_url,
	email_digest, stock_alerts, breaking_news, weekly_report,
	created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user identified by in.UID with default preferences, or
// overwrites the profile fields of an existing one.
func (r *UserRepository) Upsert(ctx context.Context, in model.UserInput) (*model.User, error) {
	defaults := model.DefaultNotifications()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users(uid, email, display_name, photo_url, email_digest, stock_alerts, breaking_news, weekly_report)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			photo_url = EXCLUDED.photo_url,
			updated_at = now()
		RETURNING `+userColumns,
		in.UID, in.Email, in.DisplayName, in.PhotoURL,
		defaults.EmailDigest, defaults.StockAlerts, defaults.BreakingNews, defaults.WeeklyReport)

	user, err := scanUser(row)
	if isPQCode(err, pqUniqueViolation) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if err := r.loadNewsIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := r.loadNewsIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile sets the display name when non-empty and merges the provided
// notification keys into the stored preferences.
func (r *UserRepository) UpdateProfile(ctx context.Context, uid, displayName string, patch model.NotificationsPatch) (*model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1 FOR UPDATE`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if displayName == "" {
		displayName = current.DisplayName
	}
	n := patch.Apply(current.Preferences.Notifications)

	user, err := scanUser(tx.QueryRowContext(ctx, `
		UPDATE users SET
			display_name = $2,
			email_digest = $3,
			stock_alerts = $4,
			breaking_news = $5,
			weekly_report = $6,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		current.ID, displayName, n.EmailDigest, n.StockAlerts, n.BreakingNews, n.WeeklyReport))
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := r.loadNewsIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) SavedNews(ctx context.Context, uid string) ([]model.News, error) {
	return r.linkedNews(ctx, "saved_news", uid)
}

func (r *UserRepository) LikedNews(ctx context.Context, uid string) ([]model.News, error) {
	return r.linkedNews(ctx, "liked_news", uid)
}

func (r *UserRepository) linkedNews(ctx context.Context, table, uid string) ([]model.News, error) {
	userID, err := userIDByUID(ctx, r.db, uid)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+newsColumnsPrefixed+`
		FROM news n
		JOIN `+table+` l ON l.news_id = n.id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, n.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	items := []model.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *UserRepository) loadNewsIDs(ctx context.Context, user *model.User) error {
	var err error
	user.SavedNews, err = r.newsIDs(ctx, "saved_news", user.ID)
	if err != nil {
		return err
	}
	user.LikedNews, err = r.newsIDs(ctx, "liked_news", user.ID)
	return err
}

func (r *UserRepository) newsIDs(ctx context.Context, table string, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT news_id FROM `+table+` WHERE user_id = $1 ORDER BY created_at, news_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", table, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func userIDByUID(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, uid string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM users WHERE uid = $1`, uid).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	return id, nil
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	n := &u.Preferences.Notifications
	err := row.Scan(&u.ID, &u.UID, &u.Email, &u.DisplayName, &u.PhotoURL,
		&n.EmailDigest, &n.StockAlerts, &n.BreakingNews, &n.WeeklyReport,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
