package patient

import (
	"encoding/json"
	"time"
)

// Patient — карточка пациента на сервере.
type Patient struct {
	ID          int64           `json:"id"`
	UserID      int             `json:"user_id"`
	Name        string          `json:"name"`
	Gender      string          `json:"gender,omitempty"`
	Location    string          `json:"location,omitempty"`
	Contact     string          `json:"contact,omitempty"`
	DateOfBirth *time.Time      `json:"date_of_birth,omitempty"`
	Age         *int            `json:"age,omitempty"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}

// AgeAt считает полные годы между датой рождения и now. Усечение по
// календарной дате, без округления: день рождения ещё не наступил — год
// не засчитан.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
