package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// TTL сессии. Полевой работник может неделями не иметь связи, поэтому
// токен живёт долго: повторный логин офлайн невозможен.
const sessionTTL = 30 * 24 * time.Hour

const tokenLen = 32

// Servicer выдаёт и проверяет токены сессий.
type Servicer interface {
	// Create выдаёт новый токен для пользователя.
	Create(ctx context.Context, userID int) (string, error)
	// Validate возвращает идентификатор владельца действующего токена.
	Validate(ctx context.Context, token string) (int, error)
}

// Service хранит в репозитории только хэш токена: утечка таблицы
// сессий не раскрывает действующие токены.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, userID int) (string, error) {
	raw := make([]byte, tokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(raw)

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	return s.repo.Validate(ctx, hashToken(token))
}

// hashToken приводит токен к виду, в котором он хранится на сервере.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
