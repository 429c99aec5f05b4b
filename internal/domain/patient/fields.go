package patient

import (
	"encoding/json"
	"fmt"
	"time"

	"aidpost/internal/utils/payload"
)

// Fields — распознанные поля пациента из полезной нагрузки мутации.
// nil-указатель означает, что клиент поле не прислал. Всё нераспознанное
// сохраняется как есть в Extra и не теряется.
type Fields struct {
	Name        *string
	Gender      *string
	Location    *string
	Contact     *string
	DateOfBirth *time.Time
	Age         *int
	Extra       json.RawMessage
}

// FieldsFromPayload переводит клиентские имена полей в серверные:
// village → location, phoneNumber → contact. Возраст клиента игнорируется
// и пересчитывается из даты рождения.
func FieldsFromPayload(data map[string]any, now time.Time) (*Fields, error) {
	f := &Fields{}
	extras := map[string]any{}

	for key, v := range data {
		switch key {
		case "name":
			s, ok := payload.String(v)
			if !ok {
				return nil, fmt.Errorf("%w: name must be a string", ErrInvalidData)
			}
			f.Name = &s
		case "gender":
			if s, ok := payload.String(v); ok {
				f.Gender = &s
			}
		case "village", "location":
			if s, ok := payload.String(v); ok {
				f.Location = &s
			}
		case "phoneNumber", "contact":
			if s, ok := payload.String(v); ok {
				f.Contact = &s
			}
		case "dateOfBirth":
			dob, err := payload.Time(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
			}
			f.DateOfBirth = &dob
		case "age":
			// возраст всегда производный, клиентское значение не хранится
		case "id", "lastUpdatedAt", "tempId":
			// служебные поля мутации, не часть карточки
		default:
			extras[key] = v
		}
	}

	if f.DateOfBirth != nil {
		age := AgeAt(*f.DateOfBirth, now)
		f.Age = &age
	}

	extra, err := payload.Extra(extras)
	if err != nil {
		return nil, err
	}
	f.Extra = extra

	return f, nil
}
