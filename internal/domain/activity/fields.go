package activity

import (
	"encoding/json"
	"fmt"

	"aidpost/internal/utils/payload"
)

// Fields — распознанные поля активности из полезной нагрузки мутации.
type Fields struct {
	Message   *string
	Type      *string
	Read      *bool
	PatientID *int64
	Extra     json.RawMessage
}

// FieldsFromPayload разбирает полезную нагрузку активности. Ссылка на
// пациента необязательна; если присутствует, она уже разрешена движком
// сверки.
func FieldsFromPayload(data map[string]any) (*Fields, error) {
	f := &Fields{}
	extras := map[string]any{}

	for key, v := range data {
		switch key {
		case "message":
			s, ok := payload.String(v)
			if !ok {
				return nil, fmt.Errorf("%w: message must be a string", ErrInvalidData)
			}
			f.Message = &s
		case "type":
			if s, ok := payload.String(v); ok {
				f.Type = &s
			}
		case "read":
			if b, ok := payload.Bool(v); ok {
				f.Read = &b
			}
		case "patientId":
			if v == nil {
				break
			}
			id, ok := payload.Int64(v)
			if !ok {
				return nil, fmt.Errorf("%w: patientId must be numeric", ErrInvalidData)
			}
			f.PatientID = &id
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
