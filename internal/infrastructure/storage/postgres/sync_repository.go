package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"aidpost/internal/domain/activity"
	"aidpost/internal/domain/consultation"
	"aidpost/internal/domain/patient"
	"aidpost/internal/domain/sync"
)

// SyncRepository исполняет пакет мутаций в одной транзакции. Откат при
// любой ошибке fn: частичные эффекты пакета не сохраняются.
type SyncRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSyncRepository(pool *pgxpool.Pool, log *slog.Logger) *SyncRepository {
	return &SyncRepository{
		pool: pool,
		log:  log.With("component", "sync_repository"),
	}
}

func (r *SyncRepository) InTx(ctx context.Context, fn func(ctx context.Context, store sync.EntityStore) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	// Rollback после Commit — безвредный no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &txStore{tx: tx, log: r.log}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

// txStore реализует sync.EntityStore поверх одной pgx-транзакции.
type txStore struct {
	tx  pgx.Tx
	log *slog.Logger
}

// setBuilder собирает динамический SET из присланных клиентом полей.
type setBuilder struct {
	clauses []string
	args    []interface{}
}

func newSetBuilder() *setBuilder {
	return &setBuilder{clauses: []string{"last_updated = NOW()"}}
}

func (b *setBuilder) add(column string, value interface{}) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// addExtra дописывает нераспознанные поля поверх уже сохранённых,
// ничего не стирая.
func (b *setBuilder) addExtra(extra []byte) {
	if extra == nil {
		return
	}
	b.args = append(b.args, extra)
	b.clauses = append(b.clauses, fmt.Sprintf("extra = extra || $%d::jsonb", len(b.args)))
}

// where завершает запрос предикатами владения и оптимистической
// блокировки; возвращает текст SET/WHERE и полный список аргументов.
func (b *setBuilder) where(id int64, ownerID int, notNewerThan time.Time) (string, []interface{}) {
	n := len(b.args)
	args := append(b.args, id, ownerID, notNewerThan)
	clause := fmt.Sprintf(
		"SET %s WHERE id = $%d AND user_id = $%d AND last_updated <= $%d",
		strings.Join(b.clauses, ", "), n+1, n+2, n+3,
	)
	return clause, args
}

func (s *txStore) CreatePatient(ctx context.Context, ownerID int, f *patient.Fields) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx, `
		INSERT INTO patients (user_id, name, gender, location, contact, date_of_birth, age, extra)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), $6, $7, COALESCE($8, '{}'::jsonb))
		RETURNING id`,
		ownerID, f.Name, f.Gender, f.Location, f.Contact, f.DateOfBirth, f.Age, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		s.log.Error("failed to create patient", "user_id", ownerID, "error", err)
		return 0, fmt.Errorf("create patient: %w", err)
	}
	return id, nil
}

func (s *txStore) UpdatePatient(ctx context.Context, ownerID int, id int64, f *patient.Fields, notNewerThan time.Time) error {
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

	clause, args := b.where(id, ownerID, notNewerThan)
	ct, err := s.tx.Exec(ctx, "UPDATE patients "+clause, args...)
	if err != nil {
		s.log.Error("failed to update patient", "patient_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("update patient: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return sync.ErrUpdateConflict
	}
	return nil
}

func (s *txStore) DeletePatient(ctx context.Context, ownerID int, id int64) error {
	// Нулевое число строк — не ошибка: удаление идемпотентно.
	_, err := s.tx.Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		s.log.Error("failed to delete patient", "patient_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

func (s *txStore) CreateConsultation(ctx context.Context, ownerID int, f *consultation.Fields) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx, `
		INSERT INTO consultations (user_id, patient_id, symptoms, notes, status, extra)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, 'pending'), COALESCE($6, '{}'::jsonb))
		RETURNING id`,
		ownerID, f.PatientID, f.Symptoms, f.Notes, f.Status, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		s.log.Error("failed to create consultation", "user_id", ownerID, "error", err)
		return 0, fmt.Errorf("create consultation: %w", err)
	}
	return id, nil
}

func (s *txStore) UpdateConsultation(ctx context.Context, ownerID int, id int64, f *consultation.Fields, notNewerThan time.Time) error {
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

	clause, args := b.where(id, ownerID, notNewerThan)
	ct, err := s.tx.Exec(ctx, "UPDATE consultations "+clause, args...)
	if err != nil {
		s.log.Error("failed to update consultation", "consultation_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("update consultation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return sync.ErrUpdateConflict
	}
	return nil
}

func (s *txStore) DeleteConsultation(ctx context.Context, ownerID int, id int64) error {
	_, err := s.tx.Exec(ctx,
		`DELETE FROM consultations WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		s.log.Error("failed to delete consultation", "consultation_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete consultation: %w", err)
	}
	return nil
}

func (s *txStore) CreateActivity(ctx context.Context, ownerID int, f *activity.Fields) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx, `
		INSERT INTO activities (user_id, message, type, read, patient_id, extra)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, FALSE), $5, COALESCE($6, '{}'::jsonb))
		RETURNING id`,
		ownerID, f.Message, f.Type, f.Read, f.PatientID, []byte(f.Extra),
	).Scan(&id)
	if err != nil {
		s.log.Error("failed to create activity", "user_id", ownerID, "error", err)
		return 0, fmt.Errorf("create activity: %w", err)
	}
	return id, nil
}

func (s *txStore) UpdateActivity(ctx context.Context, ownerID int, id int64, f *activity.Fields, notNewerThan time.Time) error {
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

	clause, args := b.where(id, ownerID, notNewerThan)
	ct, err := s.tx.Exec(ctx, "UPDATE activities "+clause, args...)
	if err != nil {
		s.log.Error("failed to update activity", "activity_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("update activity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return sync.ErrUpdateConflict
	}
	return nil
}

func (s *txStore) DeleteActivity(ctx context.Context, ownerID int, id int64) error {
	_, err := s.tx.Exec(ctx,
		`DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		s.log.Error("failed to delete activity", "activity_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
