package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"aidpost/internal/domain/consultation"
)

type ConsultationRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewConsultationRepository(pool *pgxpool.Pool, log *slog.Logger) *ConsultationRepository {
	return &ConsultationRepository{
		pool: pool,
		log:  log.With("component", "consultation_repository"),
	}
}

const consultationColumns = `id, user_id, patient_id, symptoms, notes, status, extra, last_updated`

func scanConsultation(row pgx.Row) (*consultation.Consultation, error) {
	var c consultation.Consultation
	err := row.Scan(&c.ID, &c.UserID, &c.PatientID, &c.Symptoms, &c.Notes,
		&c.Status, &c.Extra, &c.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationRepository) List(ctx context.Context, userID int, patientID int64) ([]consultation.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE user_id = $1`
	args := []interface{}{userID}
	if patientID > 0 {
		query += ` AND patient_id = $2`
		args = append(args, patientID)
	}
	query += ` ORDER BY last_updated DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list consultations", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	var consultations []consultation.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		consultations = append(consultations, *c)
	}
	return consultations, rows.Err()
}

func (r *ConsultationRepository) Get(ctx context.Context, userID int, id int64) (*consultation.Consultation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE id = $1 AND user_id = $2`,
		id, userID)

	c, err := scanConsultation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, consultation.ErrNotFound
		}
		r.log.Error("failed to get consultation", "consultation_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get consultation: %w", err)
	}
	return c, nil
}

func (r *ConsultationRepository) Create(ctx context.Context, userID int, f *consultation.Fields) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO consultations (user_id, patient_id, symptoms, notes, status, extra)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, 'pending'), COALESCE($6, '{}'::jsonb))
		RETURNING id`,
		userID, f.PatientID, f.Symptoms, f.Notes, f.Status, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create consultation", "user_id", userID, "error", err)
		return 0, fmt.Errorf("create consultation: %w", err)
	}
	return id, nil
}

func (r *ConsultationRepository) Update(ctx context.Context, userID int, id int64, f *consultation.Fields, notNewerThan time.Time) error {
	b := newSetBuilder()
	if f.PatientID != nil {
		b.add("patient_id", *f.PatientID)
	}
	if f.Symptoms != nil {
		b.add("symptoms", *f.Symptoms)
	}
	if f.Notes != nil {
		b.add("notes", *f.Notes)
	}
	if f.Status != nil {
		b.add("status", *f.Status)
	}
	b.addExtra(f.Extra)

	clause, args := b.where(id, userID, notNewerThan)
	ct, err := r.pool.Exec(ctx, "UPDATE consultations "+clause, args...)
	if err != nil {
		r.log.Error("failed to update consultation", "consultation_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("update consultation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return consultation.ErrConflict
	}
	return nil
}

func (r *ConsultationRepository) Delete(ctx context.Context, userID int, id int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM consultations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("failed to delete consultation", "consultation_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete consultation: %w", err)
	}
	return nil
}
