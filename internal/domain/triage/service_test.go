package triage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(new(discardWriter), nil))
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestFallback(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Level
	}{
		{
			name: "Emergency keyword",
			req:  Request{Symptoms: "sudden chest pain and sweating"},
			want: LevelEmergency,
		},
		{
			name: "Urgent keyword",
			req:  Request{Symptoms: "high fever for two days"},
			want: LevelUrgent,
		},
		{
			name: "Child with fever",
			req:  Request{Symptoms: "fever and cough", Age: 3},
			want: LevelUrgent,
		},
		{
			name: "Adult with fever is routine",
			req:  Request{Symptoms: "fever and cough", Age: 30},
			want: LevelRoutine,
		},
		{
			name: "Routine",
			req:  Request{Symptoms: "mild headache"},
			want: LevelRoutine,
		},
		{
			name: "Case insensitive",
			req:  Request{Symptoms: "Severe Bleeding from wound"},
			want: LevelEmergency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.req)
			assert.Equal(t, tt.want, got.Level)
			assert.Equal(t, "fallback", got.Source)
			assert.NotEmpty(t, got.Advice)
		})
	}
}

func TestService_Assess_RemoteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assess", r.URL.Path)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mild headache", req.Symptoms)

		json.NewEncoder(w).Encode(Assessment{Level: LevelUrgent, Advice: "see a doctor"})
	}))
	defer server.Close()

	remote := NewHTTPAssessor(server.URL, time.Second, testLogger())
	service := NewService(remote, testLogger())

	got, err := service.Assess(context.Background(), Request{Symptoms: "mild headache"})

	require.NoError(t, err)
	assert.Equal(t, LevelUrgent, got.Level)
	assert.Equal(t, "remote", got.Source)
}

func TestService_Assess_RemoteDown_FallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	remote := NewHTTPAssessor(server.URL, time.Second, testLogger())
	service := NewService(remote, testLogger())

	got, err := service.Assess(context.Background(), Request{Symptoms: "chest pain"})

	require.NoError(t, err)
	assert.Equal(t, LevelEmergency, got.Level)
	assert.Equal(t, "fallback", got.Source)
}

func TestService_Assess_NoRemote(t *testing.T) {
	service := NewService(nil, testLogger())

	got, err := service.Assess(context.Background(), Request{Symptoms: "mild cough"})

	require.NoError(t, err)
	assert.Equal(t, LevelRoutine, got.Level)
	assert.Equal(t, "fallback", got.Source)
}
