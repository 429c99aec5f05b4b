package consultation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromPayload(t *testing.T) {
	f, err := FieldsFromPayload(map[string]any{
		"patientId": float64(42),
		"symptoms":  "fever, headache",
		"notes":     "suspected malaria",
		"status":    "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), *f.PatientID)
	assert.Equal(t, "fever, headache", *f.Symptoms)
	assert.Equal(t, "suspected malaria", *f.Notes)
	assert.Equal(t, StatusCompleted, *f.Status)
}

func TestFieldsFromPayload_InvalidStatusSilentlyOmitted(t *testing.T) {
	f, err := FieldsFromPayload(map[string]any{
		"patientId": float64(42),
		"status":    "in_progress",
	})

	require.NoError(t, err)
	assert.Nil(t, f.Status, "out-of-range status is dropped, not rejected")
}

func TestFieldsFromPayload_ResolvedReferenceAsInt64(t *testing.T) {
	// После переписывания временных ссылок patientId приходит как int64.
	f, err := FieldsFromPayload(map[string]any{"patientId": int64(7)})

	require.NoError(t, err)
	assert.Equal(t, int64(7), *f.PatientID)
}

func TestFieldsFromPayload_NonNumericReference(t *testing.T) {
	_, err := FieldsFromPayload(map[string]any{"patientId": "temp_1001"})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestFieldsFromPayload_ExtraPreserved(t *testing.T) {
	f, err := FieldsFromPayload(map[string]any{
		"patientId": float64(42),
		"followUp":  "2026-03-10",
	})

	require.NoError(t, err)
	require.NotNil(t, f.Extra)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(f.Extra, &extra))
	assert.Equal(t, map[string]any{"followUp": "2026-03-10"}, extra)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"pending", true},
		{"completed", true},
		{"cancelled", true},
		{"canceled", false},
		{"", false},
		{"PENDING", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := ParseStatus(tt.value)
			assert.Equal(t, tt.valid, ok)
		})
	}
}
