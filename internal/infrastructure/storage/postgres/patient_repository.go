package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"aidpost/internal/domain/patient"
)

type PatientRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPatientRepository(pool *pgxpool.Pool, log *slog.Logger) *PatientRepository {
	return &PatientRepository{
		pool: pool,
		log:  log.With("component", "patient_repository"),
	}
}

const patientColumns = `id, user_id, name, gender, location, contact, date_of_birth, age, extra, last_updated`

func scanPatient(row pgx.Row) (*patient.Patient, error) {
	var p patient.Patient
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Gender, &p.Location, &p.Contact,
		&p.DateOfBirth, &p.Age, &p.Extra, &p.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context, userID int) ([]patient.Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE user_id = $1 ORDER BY last_updated DESC`,
		userID)
	if err != nil {
		r.log.Error("failed to list patients", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []patient.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func (r *PatientRepository) Get(ctx context.Context, userID int, id int64) (*patient.Patient, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1 AND user_id = $2`,
		id, userID)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, patient.ErrNotFound
		}
		r.log.Error("failed to get patient", "patient_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *PatientRepository) Create(ctx context.Context, userID int, f *patient.Fields) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (user_id, name, gender, location, contact, date_of_birth, age, extra)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), $6, $7, COALESCE($8, '{}'::jsonb))
		RETURNING id`,
		userID, f.Name, f.Gender, f.Location, f.Contact, f.DateOfBirth, f.Age, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create patient", "user_id", userID, "error", err)
		return 0, fmt.Errorf("create patient: %w", err)
	}
	return id, nil
}

func (r *PatientRepository) Update(ctx context.Context, userID int, id int64, f *patient.Fields, notNewerThan time.Time) error {
	b := newSetBuilder()
	if f.Name != nil {
		b.add("name", *f.Name)
	}
	if f.Gender != nil {
		b.add("gender", *f.Gender)
	}
	if f.Location != nil {
		b.add("location", *f.Location)
	}
	if f.Contact != nil {
		b.add("contact", *f.Contact)
	}
	if f.DateOfBirth != nil {
		b.add("date_of_birth", *f.DateOfBirth)
		b.add("age", f.Age)
	}
	b.addExtra(f.Extra)

	clause, args := b.where(id, userID, notNewerThan)
	ct, err := r.pool.Exec(ctx, "UPDATE patients "+clause, args...)
	if err != nil {
		r.log.Error("failed to update patient", "patient_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("update patient: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return patient.ErrConflict
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, userID int, id int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("failed to delete patient", "patient_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}
