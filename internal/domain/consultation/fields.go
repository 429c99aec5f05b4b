package consultation

import (
	"encoding/json"
	"fmt"

	"aidpost/internal/utils/payload"
)

// Fields — распознанные поля консультации из полезной нагрузки мутации.
type Fields struct {
	PatientID *int64
	Symptoms  *string
	Notes     *string
	Status    *Status
	Extra     json.RawMessage
}

// FieldsFromPayload разбирает полезную нагрузку. Ссылка на пациента к этому
// моменту уже разрешена движком сверки, поэтому patientId здесь всегда
// числовой. Невалидный статус молча пропускается.
func FieldsFromPayload(data map[string]any) (*Fields, error) {
	f := &Fields{}
	extras := map[string]any{}

	for key, v := range data {
		switch key {
		case "patientId":
			id, ok := payload.Int64(v)
			if !ok {
				return nil, fmt.Errorf("%w: patientId must be numeric", ErrInvalidData)
			}
			f.PatientID = &id
		case "symptoms":
			if s, ok := payload.String(v); ok {
				f.Symptoms = &s
			}
		case "notes":
			if s, ok := payload.String(v); ok {
				f.Notes = &s
			}
		case "status":
			if s, ok := payload.String(v); ok {
				if st, valid := ParseStatus(s); valid {
					f.Status = &st
				}
			}
		case "id", "lastUpdatedAt", "tempId":
			// служебные поля мутации
		default:
			extras[key] = v
		}
	}

	extra, err := payload.Extra(extras)
	if err != nil {
		return nil, err
	}
	f.Extra = extra

	return f, nil
}
