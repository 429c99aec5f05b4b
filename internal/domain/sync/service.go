package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer — движок сверки: применяет пакет мутаций как единое целое.
type Servicer interface {
	// ApplyBatch применяет пакет в одной транзакции, строго в порядке
	// следования мутаций. Возвращает результат на каждую мутацию либо
	// ошибку — тогда ни один эффект пакета не сохранён.
	ApplyBatch(ctx context.Context, ownerID int, changes []Mutation) ([]MutationResult, error)
}

// Service реализует движок сверки.
type Service struct {
	repo     Repository
	log      *slog.Logger
	handlers map[Model]entityHandler
	now      func() time.Time
}

// NewService создает движок сверки. Диспетчеризация по типу сущности
// настраивается здесь один раз, а не сравнением строк на каждый запрос.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sync_service"),
		handlers: map[Model]entityHandler{
			ModelPatient:      patientHandler{},
			ModelConsultation: consultationHandler{},
			ModelActivity:     activityHandler{},
		},
		now: time.Now,
	}
}

// ApplyBatch применяет пакет. Контракт «всё или ничего»: пакет смешивает
// зависимые сущности (пациент и его консультация в одном пакете),
// частичное применение оставило бы висячие ссылки.
func (s *Service) ApplyBatch(ctx context.Context, ownerID int, changes []Mutation) ([]MutationResult, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrValidation)
	}
	for i := range changes {
		if err := changes[i].Validate(); err != nil {
			return nil, fmt.Errorf("mutation %d: %w", i, err)
		}
	}

	results := make([]MutationResult, 0, len(changes))

	err := s.repo.InTx(ctx, func(ctx context.Context, store EntityStore) error {
		ids := IDMap{}

		for i := range changes {
			m := &changes[i]

			handler, ok := s.handlers[m.Model]
			if !ok {
				return fmt.Errorf("mutation %d: %w: %q", i, ErrUnknownModel, m.Model)
			}

			// Ссылки на сущности, созданные раньше в этом же пакете,
			// переписываются на постоянные идентификаторы до применения.
			if err := ids.RewriteRefs(m.Model, m.Data); err != nil {
				return fmt.Errorf("mutation %d: %w", i, err)
			}

			switch m.Kind {
			case KindCreate:
				id, err := handler.create(ctx, store, ownerID, m.Data, s.now())
				if err != nil {
					return fmt.Errorf("mutation %d (%s create): %w", i, m.Model, err)
				}
				ids.Register(m.TempID, id)
				results = append(results, MutationResult{Model: m.Model, Kind: m.Kind, ID: id, TempID: m.TempID})

			case KindUpdate:
				id, createdHere, err := s.targetID(m, ids)
				if err != nil {
					return fmt.Errorf("mutation %d: %w", i, err)
				}
				// Строка, созданная этой же транзакцией, устареть не могла,
				// а её last_updated проставлен серверным NOW() — заведомо
				// позже офлайн-метки клиента. Проверка давности для таких
				// целей снимается, иначе пакет create+update не проходил бы
				// никогда.
				notNewerThan := *m.LastUpdatedAt
				if createdHere {
					notNewerThan = s.now()
				}
				if err := handler.update(ctx, store, ownerID, id, m.Data, notNewerThan, s.now()); err != nil {
					return fmt.Errorf("mutation %d (%s update): %w", i, m.Model, err)
				}
				results = append(results, MutationResult{Model: m.Model, Kind: m.Kind, ID: id})

			case KindDelete:
				id, _, err := s.targetID(m, ids)
				if err != nil {
					return fmt.Errorf("mutation %d: %w", i, err)
				}
				if err := handler.remove(ctx, store, ownerID, id); err != nil {
					return fmt.Errorf("mutation %d (%s delete): %w", i, m.Model, err)
				}
				results = append(results, MutationResult{Model: m.Model, Kind: m.Kind, ID: id})

			default:
				return fmt.Errorf("mutation %d: %w: %q", i, ErrUnknownKind, m.Kind)
			}
		}

		return nil
	})
	if err != nil {
		s.log.Warn("batch rolled back", "owner_id", ownerID, "mutations", len(changes), "error", err)
		return nil, err
	}

	s.log.Info("batch committed", "owner_id", ownerID, "mutations", len(changes))
	return results, nil
}

// targetID определяет целевую строку update/delete. Мутация может метить
// в сущность, созданную раньше в этом же пакете, — тогда цель задана
// временным идентификатором; второй результат сообщает об этом случае.
func (s *Service) targetID(m *Mutation, ids IDMap) (int64, bool, error) {
	if m.ID > 0 {
		return m.ID, false, nil
	}
	id, err := ids.Resolve(m.TempID)
	return id, err == nil, err
}
