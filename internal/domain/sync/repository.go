package sync

import (
	"context"
	"time"

	"aidpost/internal/domain/activity"
	"aidpost/internal/domain/consultation"
	"aidpost/internal/domain/patient"
)

// EntityStore — транзакционные операции над таблицами сущностей. Все
// методы работают внутри одной транзакции пакета; владелец (ownerID)
// участвует в каждом условии WHERE.
//
// Update-методы принимают notNewerThan — последнюю метку времени, которую
// видел клиент. Запись принимается, только если серверная last_updated не
// новее; иначе возвращается ErrUpdateConflict. Delete несуществующей или
// чужой строки — безвредный no-op.
type EntityStore interface {
	CreatePatient(ctx context.Context, ownerID int, f *patient.Fields) (int64, error)
	UpdatePatient(ctx context.Context, ownerID int, id int64, f *patient.Fields, notNewerThan time.Time) error
	DeletePatient(ctx context.Context, ownerID int, id int64) error

	CreateConsultation(ctx context.Context, ownerID int, f *consultation.Fields) (int64, error)
	UpdateConsultation(ctx context.Context, ownerID int, id int64, f *consultation.Fields, notNewerThan time.Time) error
	DeleteConsultation(ctx context.Context, ownerID int, id int64) error

	CreateActivity(ctx context.Context, ownerID int, f *activity.Fields) (int64, error)
	UpdateActivity(ctx context.Context, ownerID int, id int64, f *activity.Fields, notNewerThan time.Time) error
	DeleteActivity(ctx context.Context, ownerID int, id int64) error
}

// Repository исполняет fn внутри одной транзакции БД. Ошибка fn приводит
// к откату: частичные эффекты пакета не переживают сбой.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context, store EntityStore) error) error
}
