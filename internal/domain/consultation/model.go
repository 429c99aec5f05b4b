package consultation

import (
	"encoding/json"
	"time"
)

// Status — статус консультации. Закрытое перечисление.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus возвращает статус и признак его валидности. Невалидное
// значение не ошибка: клиент мог быть собран против более новой схемы,
// поле просто пропускается (см. lenient-политику в DESIGN.md).
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Consultation — запись о консультации пациента.
type Consultation struct {
	ID          int64           `json:"id"`
	UserID      int             `json:"user_id"`
	PatientID   int64           `json:"patient_id"`
	Symptoms    string          `json:"symptoms,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Status      Status          `json:"status"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}
