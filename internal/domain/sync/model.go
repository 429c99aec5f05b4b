package sync

import (
	"fmt"
	"time"
)

// Model — тип сущности, к которой применяется мутация. Закрытое
// перечисление: диспетчеризация по нему настраивается один раз при
// создании сервиса.
type Model string

const (
	ModelPatient      Model = "Patient"
	ModelConsultation Model = "Consultation"
	ModelActivity     Model = "Activity"
)

// Kind — вид мутации.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Mutation — одно намерение изменить одну сущность. После добавления в
// клиентский журнал мутация неизменяема: её либо удаляют после
// подтверждения, либо отправляют повторно.
type Mutation struct {
	Model         Model          `json:"model"`
	Kind          Kind           `json:"type"`
	Data          map[string]any `json:"data,omitempty"`
	TempID        string         `json:"tempId,omitempty"`
	ID            int64          `json:"id,omitempty"`
	LastUpdatedAt *time.Time     `json:"lastUpdatedAt,omitempty"`
}

// Validate проверяет обязательные поля мутации до какой-либо записи в БД.
func (m *Mutation) Validate() error {
	switch m.Model {
	case ModelPatient, ModelConsultation, ModelActivity:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownModel, m.Model)
	}

	switch m.Kind {
	case KindCreate:
		if m.TempID == "" {
			return fmt.Errorf("%w: create requires tempId", ErrValidation)
		}
		if !IsTempID(m.TempID) {
			return fmt.Errorf("%w: tempId %q has no temporary marker", ErrValidation, m.TempID)
		}
		if m.Data == nil {
			return fmt.Errorf("%w: create requires data", ErrValidation)
		}
	case KindUpdate:
		if m.ID <= 0 && m.TempID == "" {
			return fmt.Errorf("%w: update requires id or tempId", ErrValidation)
		}
		if m.LastUpdatedAt == nil {
			return fmt.Errorf("%w: update requires lastUpdatedAt", ErrValidation)
		}
		if m.Data == nil {
			return fmt.Errorf("%w: update requires data", ErrValidation)
		}
	case KindDelete:
		if m.ID <= 0 && m.TempID == "" {
			return fmt.Errorf("%w: delete requires id or tempId", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}

	return nil
}

// MutationResult — результат применения одной мутации. Для create несёт
// временный идентификатор клиента и новый постоянный идентификатор.
type MutationResult struct {
	Model  Model  `json:"model"`
	Kind   Kind   `json:"type"`
	ID     int64  `json:"id"`
	TempID string `json:"tempId,omitempty"`
}
