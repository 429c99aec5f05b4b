package sync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTempID(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "temp id string", value: "temp_1001", want: true},
		{name: "generated temp id", value: NewTempID(), want: true},
		{name: "permanent id as string", value: "1001", want: false},
		{name: "numeric id", value: float64(1001), want: false},
		{name: "nil", value: nil, want: false},
		{name: "prefix inside string", value: "x_temp_1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTempID(tt.value))
		})
	}
}

func TestNewTempID_Unique(t *testing.T) {
	a := NewTempID()
	b := NewTempID()

	assert.True(t, strings.HasPrefix(a, TempIDPrefix))
	assert.NotEqual(t, a, b)
}

func TestIDMap_Resolve(t *testing.T) {
	ids := IDMap{}
	ids.Register("temp_1001", 42)

	id, err := ids.Resolve("temp_1001")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ids.Resolve("temp_9999")
	assert.ErrorIs(t, err, ErrUnknownTempRef)
}

func TestIDMap_RewriteRefs(t *testing.T) {
	ids := IDMap{}
	ids.Register("temp_1001", 42)

	t.Run("rewrites temp reference", func(t *testing.T) {
		data := map[string]any{"patientId": "temp_1001", "notes": "fever"}
		require.NoError(t, ids.RewriteRefs(ModelConsultation, data))
		assert.Equal(t, int64(42), data["patientId"])
		assert.Equal(t, "fever", data["notes"])
	})

	t.Run("leaves permanent reference untouched", func(t *testing.T) {
		data := map[string]any{"patientId": float64(7)}
		require.NoError(t, ids.RewriteRefs(ModelConsultation, data))
		assert.Equal(t, float64(7), data["patientId"])
	})

	t.Run("unresolved reference fails", func(t *testing.T) {
		data := map[string]any{"patientId": "temp_9999"}
		err := ids.RewriteRefs(ModelActivity, data)
		assert.ErrorIs(t, err, ErrUnknownTempRef)
	})

	t.Run("patient has no reference fields", func(t *testing.T) {
		data := map[string]any{"name": "temp_looking_value"}
		require.NoError(t, ids.RewriteRefs(ModelPatient, data))
		assert.Equal(t, "temp_looking_value", data["name"])
	})
}
