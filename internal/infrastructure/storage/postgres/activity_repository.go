package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"aidpost/internal/domain/activity"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewActivityRepository(pool *pgxpool.Pool, log *slog.Logger) *ActivityRepository {
	return &ActivityRepository{
		pool: pool,
		log:  log.With("component", "activity_repository"),
	}
}

const activityColumns = `id, user_id, message, type, read, patient_id, extra, last_updated`

func scanActivity(row pgx.Row) (*activity.Activity, error) {
	var a activity.Activity
	err := row.Scan(&a.ID, &a.UserID, &a.Message, &a.Type, &a.Read,
		&a.PatientID, &a.Extra, &a.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepository) List(ctx context.Context, userID int, unreadOnly bool) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY last_updated DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list activities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) Get(ctx context.Context, userID int, id int64) (*activity.Activity, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1 AND user_id = $2`,
		id, userID)

	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, activity.ErrNotFound
		}
		r.log.Error("failed to get activity", "activity_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func (r *ActivityRepository) Create(ctx context.Context, userID int, f *activity.Fields) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, message, type, read, patient_id, extra)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, FALSE), $5, COALESCE($6, '{}'::jsonb))
		RETURNING id`,
		userID, f.Message, f.Type, f.Read, f.PatientID, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create activity", "user_id", userID, "error", err)
		return 0, fmt.Errorf("create activity: %w", err)
	}
	return id, nil
}

func (r *ActivityRepository) Update(ctx context.Context, userID int, id int64, f *activity.Fields, notNewerThan time.Time) error {
	b := newSetBuilder()
	if f.Message != nil {
		b.add("message", *f.Message)
	}
	if f.Type != nil {
		b.add("type", *f.Type)
	}
	if f.Read != nil {
		b.add("read", *f.Read)
	}
	if f.PatientID != nil {
		b.add("patient_id", *f.PatientID)
	}
	b.addExtra(f.Extra)

	clause, args := b.where(id, userID, notNewerThan)
	ct, err := r.pool.Exec(ctx, "UPDATE activities "+clause, args...)
	if err != nil {
		r.log.Error("failed to update activity", "activity_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("update activity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return activity.ErrConflict
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, userID int, id int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("failed to delete activity", "activity_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
