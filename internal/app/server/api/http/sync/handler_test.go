package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"aidpost/internal/app/server/api/http/middleware/auth"
	"aidpost/internal/domain/sync"
)

type MockServicer struct {
	mock.Mock
}

func (m *MockServicer) ApplyBatch(ctx context.Context, ownerID int, changes []sync.Mutation) ([]sync.MutationResult, error) {
	args := m.Called(ctx, ownerID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.MutationResult), args.Error(1)
}

func authedCtx(userID int) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_batch_Success(t *testing.T) {
	mockService := new(MockServicer)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	changes := []sync.Mutation{
		{Model: sync.ModelPatient, Kind: sync.KindCreate, TempID: "temp_1", Data: map[string]any{"name": "Amina"}},
	}
	results := []sync.MutationResult{
		{Model: sync.ModelPatient, Kind: sync.KindCreate, ID: 42, TempID: "temp_1"},
	}

	mockService.On("ApplyBatch", mock.Anything, 7, changes).Return(results, nil)

	output, err := handler.batch(authedCtx(7), &batchInput{Body: sync.BatchRequest{Changes: changes}})

	assert.NoError(t, err)
	assert.True(t, output.Body.Success)
	assert.Equal(t, results, output.Body.Results)
	assert.Empty(t, output.Body.Error)

	mockService.AssertExpectations(t)
}

func TestHandler_batch_Failure(t *testing.T) {
	mockService := new(MockServicer)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	changes := []sync.Mutation{
		{Model: sync.ModelPatient, Kind: sync.KindDelete, ID: 42},
	}

	mockService.On("ApplyBatch", mock.Anything, 7, changes).Return(nil, errors.New("mutation 0: update conflict"))

	output, err := handler.batch(authedCtx(7), &batchInput{Body: sync.BatchRequest{Changes: changes}})

	assert.NoError(t, err)
	assert.False(t, output.Body.Success)
	assert.Empty(t, output.Body.Results)
	assert.Contains(t, output.Body.Error, "update conflict")

	mockService.AssertExpectations(t)
}

func TestHandler_batch_Unauthorized(t *testing.T) {
	mockService := new(MockServicer)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	_, err := handler.batch(context.Background(), &batchInput{})

	assert.Error(t, err)
	mockService.AssertNotCalled(t, "ApplyBatch")
}
