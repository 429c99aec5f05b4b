package activity

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer — сервис ленты активностей.
type Servicer interface {
	List(ctx context.Context, userID int, unreadOnly bool) ([]Activity, error)
	Create(ctx context.Context, userID int, data map[string]any) (*Activity, error)
	MarkRead(ctx context.Context, userID int, id int64) error
	Delete(ctx context.Context, userID int, id int64) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "activity_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int, unreadOnly bool) ([]Activity, error) {
	return s.repo.List(ctx, userID, unreadOnly)
}

func (s *Service) Create(ctx context.Context, userID int, data map[string]any) (*Activity, error) {
	f, err := FieldsFromPayload(data)
	if err != nil {
		return nil, err
	}
	if f.Message == nil {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidData)
	}

	id, err := s.repo.Create(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	return s.repo.Get(ctx, userID, id)
}

// MarkRead помечает событие прочитанным. Онлайн-операция, метка времени
// клиента не участвует.
func (s *Service) MarkRead(ctx context.Context, userID int, id int64) error {
	read := true
	return s.repo.Update(ctx, userID, id, &Fields{Read: &read}, s.now())
}

func (s *Service) Delete(ctx context.Context, userID int, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
