package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"aidpost/internal/domain/sync"
)

// SQLiteStorage — локальная база клиента: карточки пациентов,
// консультации, лента и журнал мутаций. Журнал — источник истины для
// сверки, таблицы сущностей — снимок для отображения.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS patients (
			id TEXT PRIMARY KEY,
			temp_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT '',
			village TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			date_of_birth TEXT NOT NULL DEFAULT '',
			extra TEXT NOT NULL DEFAULT '{}',
			updated_at DATETIME NOT NULL,
			synced BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS consultations (
			id TEXT PRIMARY KEY,
			temp_id TEXT NOT NULL DEFAULT '',
			patient_id TEXT NOT NULL,
			symptoms TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			extra TEXT NOT NULL DEFAULT '{}',
			updated_at DATETIME NOT NULL,
			synced BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			temp_id TEXT NOT NULL DEFAULT '',
			patient_id TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT 0,
			extra TEXT NOT NULL DEFAULT '{}',
			updated_at DATETIME NOT NULL,
			synced BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS mutations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			kind TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			data TEXT NOT NULL DEFAULT '{}',
			last_updated_at TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_consultations_patient ON consultations(patient_id);
		CREATE INDEX IF NOT EXISTS idx_activities_patient ON activities(patient_id);
	`)

	return err
}

func marshalExtra(extra map[string]any) (string, error) {
	if extra == nil {
		return "{}", nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации extra: %w", err)
	}
	return string(data), nil
}

func unmarshalExtra(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var extra map[string]any
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return nil, fmt.Errorf("ошибка парсинга extra: %w", err)
	}
	return extra, nil
}

// ==================== Patients ====================

func (s *SQLiteStorage) SavePatient(p *Patient) error {
	extraJSON, err := marshalExtra(p.Extra)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO patients (id, temp_id, name, gender, village, phone_number, date_of_birth, extra, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_id = excluded.temp_id,
			name = excluded.name, gender = excluded.gender, village = excluded.village,
			phone_number = excluded.phone_number, date_of_birth = excluded.date_of_birth,
			extra = excluded.extra, updated_at = excluded.updated_at, synced = excluded.synced
	`, p.ID, p.TempID, p.Name, p.Gender, p.Village, p.PhoneNumber, p.DateOfBirth,
		extraJSON, p.UpdatedAt.Format(time.RFC3339), p.Synced)

	if err != nil {
		return fmt.Errorf("ошибка сохранения пациента: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) scanPatient(row interface{ Scan(...any) error }) (*Patient, error) {
	var p Patient
	var extraJSON, updatedAt string

	if err := row.Scan(&p.ID, &p.TempID, &p.Name, &p.Gender, &p.Village, &p.PhoneNumber,
		&p.DateOfBirth, &extraJSON, &updatedAt, &p.Synced); err != nil {
		return nil, err
	}

	extra, err := unmarshalExtra(extraJSON)
	if err != nil {
		return nil, err
	}
	p.Extra = extra
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

func (s *SQLiteStorage) GetPatient(id string) (*Patient, error) {
	row := s.db.QueryRow(`
		SELECT id, temp_id, name, gender, village, phone_number, date_of_birth, extra, updated_at, synced
		FROM patients WHERE id = ?
	`, id)

	p, err := s.scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("пациент не найден: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пациента: %w", err)
	}
	return p, nil
}

func (s *SQLiteStorage) ListPatients() ([]*Patient, error) {
	rows, err := s.db.Query(`
		SELECT id, temp_id, name, gender, village, phone_number, date_of_birth, extra, updated_at, synced
		FROM patients ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := s.scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пациента: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (s *SQLiteStorage) DeletePatient(id string) error {
	_, err := s.db.Exec("DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пациента: %w", err)
	}
	return nil
}

// ==================== Consultations ====================

func (s *SQLiteStorage) SaveConsultation(c *Consultation) error {
	extraJSON, err := marshalExtra(c.Extra)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO consultations (id, temp_id, patient_id, symptoms, notes, status, extra, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_id = excluded.temp_id,
			patient_id = excluded.patient_id, symptoms = excluded.symptoms,
			notes = excluded.notes, status = excluded.status, extra = excluded.extra,
			updated_at = excluded.updated_at, synced = excluded.synced
	`, c.ID, c.TempID, c.PatientID, c.Symptoms, c.Notes, c.Status,
		extraJSON, c.UpdatedAt.Format(time.RFC3339), c.Synced)

	if err != nil {
		return fmt.Errorf("ошибка сохранения консультации: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) scanConsultation(row interface{ Scan(...any) error }) (*Consultation, error) {
	var c Consultation
	var extraJSON, updatedAt string

	if err := row.Scan(&c.ID, &c.TempID, &c.PatientID, &c.Symptoms, &c.Notes, &c.Status,
		&extraJSON, &updatedAt, &c.Synced); err != nil {
		return nil, err
	}

	extra, err := unmarshalExtra(extraJSON)
	if err != nil {
		return nil, err
	}
	c.Extra = extra
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &c, nil
}

func (s *SQLiteStorage) GetConsultation(id string) (*Consultation, error) {
	row := s.db.QueryRow(`
		SELECT id, temp_id, patient_id, symptoms, notes, status, extra, updated_at, synced
		FROM consultations WHERE id = ?
	`, id)

	c, err := s.scanConsultation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("консультация не найдена: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения консультации: %w", err)
	}
	return c, nil
}

// ListConsultations возвращает консультации; непустой patientID сужает
// выборку до одного пациента.
func (s *SQLiteStorage) ListConsultations(patientID string) ([]*Consultation, error) {
	query := `SELECT id, temp_id, patient_id, symptoms, notes, status, extra, updated_at, synced FROM consultations`
	args := []any{}
	if patientID != "" {
		query += " WHERE patient_id = ?"
		args = append(args, patientID)
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var consultations []*Consultation
	for rows.Next() {
		c, err := s.scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования консультации: %w", err)
		}
		consultations = append(consultations, c)
	}
	return consultations, rows.Err()
}

func (s *SQLiteStorage) DeleteConsultation(id string) error {
	_, err := s.db.Exec("DELETE FROM consultations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления консультации: %w", err)
	}
	return nil
}

// ==================== Activities ====================

func (s *SQLiteStorage) SaveActivity(a *Activity) error {
	extraJSON, err := marshalExtra(a.Extra)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO activities (id, temp_id, patient_id, message, type, read, extra, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_id = excluded.temp_id,
			patient_id = excluded.patient_id, message = excluded.message,
			type = excluded.type, read = excluded.read, extra = excluded.extra,
			updated_at = excluded.updated_at, synced = excluded.synced
	`, a.ID, a.TempID, a.PatientID, a.Message, a.Type, a.Read,
		extraJSON, a.UpdatedAt.Format(time.RFC3339), a.Synced)

	if err != nil {
		return fmt.Errorf("ошибка сохранения события: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) scanActivity(row interface{ Scan(...any) error }) (*Activity, error) {
	var a Activity
	var extraJSON, updatedAt string

	if err := row.Scan(&a.ID, &a.TempID, &a.PatientID, &a.Message, &a.Type, &a.Read,
		&extraJSON, &updatedAt, &a.Synced); err != nil {
		return nil, err
	}

	extra, err := unmarshalExtra(extraJSON)
	if err != nil {
		return nil, err
	}
	a.Extra = extra
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &a, nil
}

func (s *SQLiteStorage) GetActivity(id string) (*Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, temp_id, patient_id, message, type, read, extra, updated_at, synced
		FROM activities WHERE id = ?
	`, id)

	a, err := s.scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("событие не найдено: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения события: %w", err)
	}
	return a, nil
}

func (s *SQLiteStorage) ListActivities(unreadOnly bool) ([]*Activity, error) {
	query := `SELECT id, temp_id, patient_id, message, type, read, extra, updated_at, synced FROM activities`
	if unreadOnly {
		query += " WHERE read = 0"
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a, err := s.scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования события: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *SQLiteStorage) DeleteActivity(id string) error {
	_, err := s.db.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления события: %w", err)
	}
	return nil
}

// ==================== Mutation log ====================

func (s *SQLiteStorage) AppendMutation(e *LogEntry) error {
	dataJSON := "{}"
	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return fmt.Errorf("ошибка сериализации мутации: %w", err)
		}
		dataJSON = string(raw)
	}

	var lastUpdated any
	if e.LastUpdatedAt != nil {
		lastUpdated = e.LastUpdatedAt.Format(time.RFC3339)
	}

	res, err := s.db.Exec(`
		INSERT INTO mutations (model, kind, entity_id, data, last_updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(e.Model), string(e.Kind), e.EntityID, dataJSON, lastUpdated,
		e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал: %w", err)
	}

	e.Seq, _ = res.LastInsertId()
	return nil
}

// PendingMutations возвращает журнал в порядке записи.
func (s *SQLiteStorage) PendingMutations() ([]*LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT seq, model, kind, entity_id, data, last_updated_at, created_at
		FROM mutations ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var entries []*LogEntry
	for rows.Next() {
		var e LogEntry
		var model, kind, dataJSON, createdAt string
		var lastUpdated sql.NullString

		if err := rows.Scan(&e.Seq, &model, &kind, &e.EntityID, &dataJSON,
			&lastUpdated, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования журнала: %w", err)
		}

		e.Model = sync.Model(model)
		e.Kind = sync.Kind(kind)
		if dataJSON != "{}" {
			if err := json.Unmarshal([]byte(dataJSON), &e.Data); err != nil {
				return nil, fmt.Errorf("ошибка парсинга мутации: %w", err)
			}
		}
		if lastUpdated.Valid {
			t, err := time.Parse(time.RFC3339, lastUpdated.String)
			if err == nil {
				e.LastUpdatedAt = &t
			}
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteMutationsUpTo удаляет подтверждённый префикс журнала.
func (s *SQLiteStorage) DeleteMutationsUpTo(seq int64) error {
	_, err := s.db.Exec("DELETE FROM mutations WHERE seq <= ?", seq)
	if err != nil {
		return fmt.Errorf("ошибка очистки журнала: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) CountPendingMutations() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM mutations").Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета журнала: %w", err)
	}
	return count, nil
}

// ==================== Remap ====================

// RemapID подменяет временный идентификатор постоянным в таблице
// сущности и во всех локальных ссылках; прежнее значение остаётся в
// temp_id для корреляции. Повторный вызов с тем же отображением
// безвреден: строк с временным значением уже нет.
func (s *SQLiteStorage) RemapID(model sync.Model, tempID, permanentID string) error {
	var table string
	switch model {
	case sync.ModelPatient:
		table = "patients"
	case sync.ModelConsultation:
		table = "consultations"
	case sync.ModelActivity:
		table = "activities"
	default:
		return fmt.Errorf("неизвестная модель: %s", model)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE "+table+" SET id = ?, temp_id = ?, synced = 1 WHERE id = ?",
		permanentID, tempID, tempID); err != nil {
		return fmt.Errorf("ошибка подмены идентификатора: %w", err)
	}

	if model == sync.ModelPatient {
		if _, err := tx.Exec(
			"UPDATE consultations SET patient_id = ? WHERE patient_id = ?",
			permanentID, tempID); err != nil {
			return fmt.Errorf("ошибка подмены ссылки в консультациях: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE activities SET patient_id = ? WHERE patient_id = ?",
			permanentID, tempID); err != nil {
			return fmt.Errorf("ошибка подмены ссылки в событиях: %w", err)
		}
	}

	return tx.Commit()
}

// MarkSynced помечает строку сущности синхронизированной.
func (s *SQLiteStorage) MarkSynced(model sync.Model, id string) error {
	var table string
	switch model {
	case sync.ModelPatient:
		table = "patients"
	case sync.ModelConsultation:
		table = "consultations"
	case sync.ModelActivity:
		table = "activities"
	default:
		return fmt.Errorf("неизвестная модель: %s", model)
	}

	_, err := s.db.Exec("UPDATE "+table+" SET synced = 1 WHERE id = ?", id)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
