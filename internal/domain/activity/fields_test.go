package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromPayload(t *testing.T) {
	f, err := FieldsFromPayload(map[string]any{
		"message":   "follow up in 3 days",
		"type":      "reminder",
		"read":      false,
		"patientId": float64(42),
		"priority":  "high",
	})

	require.NoError(t, err)
	require.NotNil(t, f.Message)
	assert.Equal(t, "follow up in 3 days", *f.Message)
	require.NotNil(t, f.Type)
	assert.Equal(t, "reminder", *f.Type)
	require.NotNil(t, f.Read)
	assert.False(t, *f.Read)
	require.NotNil(t, f.PatientID)
	assert.Equal(t, int64(42), *f.PatientID)

	// Unknown fields survive in the side channel.
	var extra map[string]any
	require.NoError(t, json.Unmarshal(f.Extra, &extra))
	assert.Equal(t, "high", extra["priority"])
}

func TestFieldsFromPayload_NoPatient(t *testing.T) {
	f, err := FieldsFromPayload(map[string]any{
		"message": "stock check",
	})

	require.NoError(t, err)
	assert.Nil(t, f.PatientID)
	assert.Nil(t, f.Extra)
}

func TestFieldsFromPayload_BadPatientRef(t *testing.T) {
	_, err := FieldsFromPayload(map[string]any{
		"message":   "x",
		"patientId": "not-a-number",
	})

	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestFieldsFromPayload_BadMessage(t *testing.T) {
	_, err := FieldsFromPayload(map[string]any{
		"message": 7,
	})

	assert.ErrorIs(t, err, ErrInvalidData)
}
