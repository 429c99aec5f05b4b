package sync

import (
	"context"
	"time"

	"aidpost/internal/domain/activity"
	"aidpost/internal/domain/consultation"
	"aidpost/internal/domain/patient"
)

// entityHandler — общий контракт обработчика одной сущности. Реализации
// переводят полезную нагрузку клиента в распознанные поля и вызывают
// транзакционное хранилище.
type entityHandler interface {
	create(ctx context.Context, store EntityStore, ownerID int, data map[string]any, now time.Time) (int64, error)
	update(ctx context.Context, store EntityStore, ownerID int, id int64, data map[string]any, notNewerThan time.Time, now time.Time) error
	remove(ctx context.Context, store EntityStore, ownerID int, id int64) error
}

type patientHandler struct{}

func (patientHandler) create(ctx context.Context, store EntityStore, ownerID int, data map[string]any, now time.Time) (int64, error) {
	f, err := patient.FieldsFromPayload(data, now)
	if err != nil {
		return 0, err
	}
	return store.CreatePatient(ctx, ownerID, f)
}

func (patientHandler) update(ctx context.Context, store EntityStore, ownerID int, id int64, data map[string]any, notNewerThan time.Time, now time.Time) error {
	f, err := patient.FieldsFromPayload(data, now)
	if err != nil {
		return err
	}
	return store.UpdatePatient(ctx, ownerID, id, f, notNewerThan)
}

func (patientHandler) remove(ctx context.Context, store EntityStore, ownerID int, id int64) error {
	return store.DeletePatient(ctx, ownerID, id)
}

type consultationHandler struct{}

func (consultationHandler) create(ctx context.Context, store EntityStore, ownerID int, data map[string]any, _ time.Time) (int64, error) {
	f, err := consultation.FieldsFromPayload(data)
	if err != nil {
		return 0, err
	}
	return store.CreateConsultation(ctx, ownerID, f)
}

func (consultationHandler) update(ctx context.Context, store EntityStore, ownerID int, id int64, data map[string]any, notNewerThan time.Time, _ time.Time) error {
	f, err := consultation.FieldsFromPayload(data)
	if err != nil {
		return err
	}
	return store.UpdateConsultation(ctx, ownerID, id, f, notNewerThan)
}

func (consultationHandler) remove(ctx context.Context, store EntityStore, ownerID int, id int64) error {
	return store.DeleteConsultation(ctx, ownerID, id)
}

type activityHandler struct{}

func (activityHandler) create(ctx context.Context, store EntityStore, ownerID int, data map[string]any, _ time.Time) (int64, error) {
	f, err := activity.FieldsFromPayload(data)
	if err != nil {
		return 0, err
	}
	return store.CreateActivity(ctx, ownerID, f)
}

func (activityHandler) update(ctx context.Context, store EntityStore, ownerID int, id int64, data map[string]any, notNewerThan time.Time, _ time.Time) error {
	f, err := activity.FieldsFromPayload(data)
	if err != nil {
		return err
	}
	return store.UpdateActivity(ctx, ownerID, id, f, notNewerThan)
}

func (activityHandler) remove(ctx context.Context, store EntityStore, ownerID int, id int64) error {
	return store.DeleteActivity(ctx, ownerID, id)
}
