package activity

import (
	"encoding/json"
	"time"
)

// Activity — событие в ленте работника здравоохранения: напоминание,
// заметка о визите, системное сообщение.
type Activity struct {
	ID          int64           `json:"id"`
	UserID      int             `json:"user_id"`
	Message     string          `json:"message"`
	Type        string          `json:"type,omitempty"`
	Read        bool            `json:"read"`
	PatientID   *int64          `json:"patient_id,omitempty"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}
