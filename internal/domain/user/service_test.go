package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewPasswordValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	// We can't predict the exact hash, so only check that Create is called
	// with the right login and a non-empty hash.
	mockRepo.On("Create", mock.Anything, login, mock.MatchedBy(func(hash string) bool {
		return hash != ""
	})).Return(123, nil)

	userID, err := service.Register(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, 123, userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(0, errors.New("database error"))

	_, err := service.Register(context.Background(), "testuser", "testpassword123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Register_ValidationError(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "login too short", login: "ab", password: "goodpass1"},
		{name: "password too short", login: "testuser", password: "short1"},
		{name: "password without digit", login: "testuser", password: "onlyletters"},
		{name: "login with space", login: "test user", password: "goodpass1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Register(context.Background(), tt.login, tt.password)
			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := User{
		ID:       123,
		Login:    login,
		Password: string(hash),
	}

	mockRepo.On("FindByLogin", mock.Anything, login).Return(user, nil)

	authUser, err := service.Authenticate(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, user, authUser)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_UserNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindByLogin", mock.Anything, "nonexistent").Return(User{}, errors.New("user not found"))

	_, err := service.Authenticate(context.Background(), "nonexistent", "testpassword123")
	assert.Error(t, err)
	assert.Equal(t, ErrNotFound, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"

	hash, err := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := User{
		ID:       123,
		Login:    login,
		Password: string(hash),
	}

	mockRepo.On("FindByLogin", mock.Anything, login).Return(user, nil)

	_, err = service.Authenticate(context.Background(), login, "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAuth, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidHash(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"

	// Stored value is not a valid bcrypt hash.
	user := User{
		ID:       123,
		Login:    login,
		Password: "invalidhash",
	}

	mockRepo.On("FindByLogin", mock.Anything, login).Return(user, nil)

	_, err := service.Authenticate(context.Background(), login, "testpassword123")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAuth, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	// Login too short, repository is never consulted.
	_, err := service.Authenticate(context.Background(), "ab", "testpassword123")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAuth, err)

	mockRepo.AssertNotCalled(t, "FindByLogin")
}
