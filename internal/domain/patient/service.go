package patient

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"aidpost/internal/utils/payload"
)

// Servicer — сервис пациентов для онлайн-клиентов (веб-интерфейс и
// подключённые мобильные клиенты). Офлайн-путь идёт через движок сверки.
type Servicer interface {
	List(ctx context.Context, userID int) ([]Patient, error)
	Get(ctx context.Context, userID int, id int64) (*Patient, error)
	Create(ctx context.Context, userID int, data map[string]any) (*Patient, error)
	Update(ctx context.Context, userID int, id int64, data map[string]any) (*Patient, error)
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
		log:  log.With("component", "patient_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Patient, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID int, id int64) (*Patient, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID int, data map[string]any) (*Patient, error) {
	f, err := FieldsFromPayload(data, s.now())
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return s.repo.Get(ctx, userID, id)
}

// Update применяет онлайн-правку. Клиент может прислать lastUpdatedAt —
// тогда действует та же оптимистическая проверка, что и при сверке;
// без метки правка перезаписывает текущее состояние.
func (s *Service) Update(ctx context.Context, userID int, id int64, data map[string]any) (*Patient, error) {
	f, err := FieldsFromPayload(data, s.now())
	if err != nil {
		return nil, err
	}

	notNewerThan := s.now()
	if v, ok := data["lastUpdatedAt"]; ok {
		t, err := payload.Time(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		notNewerThan = t
	}

	if err := s.repo.Update(ctx, userID, id, f, notNewerThan); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID int, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
