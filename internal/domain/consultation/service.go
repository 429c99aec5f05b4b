package consultation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"aidpost/internal/utils/payload"
)

// Servicer — сервис консультаций для онлайн-клиентов.
type Servicer interface {
	// List возвращает консультации пользователя; patientID > 0 сужает
	// выборку до одного пациента.
	List(ctx context.Context, userID int, patientID int64) ([]Consultation, error)
	Get(ctx context.Context, userID int, id int64) (*Consultation, error)
	Create(ctx context.Context, userID int, data map[string]any) (*Consultation, error)
	Update(ctx context.Context, userID int, id int64, data map[string]any) (*Consultation, error)
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
		log:  log.With("component", "consultation_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int, patientID int64) ([]Consultation, error) {
	return s.repo.List(ctx, userID, patientID)
}

func (s *Service) Get(ctx context.Context, userID int, id int64) (*Consultation, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID int, data map[string]any) (*Consultation, error) {
	f, err := FieldsFromPayload(data)
	if err != nil {
		return nil, err
	}
	if f.PatientID == nil {
		return nil, fmt.Errorf("%w: patientId is required", ErrInvalidData)
	}

	id, err := s.repo.Create(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("create consultation: %w", err)
	}

	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, userID int, id int64, data map[string]any) (*Consultation, error) {
	f, err := FieldsFromPayload(data)
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
