package sync

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"aidpost/internal/app/server/api/http/middleware/auth"
	"aidpost/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.batchOp(), h.batch)
}

// batch применяет пакет мутаций целиком. Ответ всегда 200: клиент смотрит
// на флаг success — при false ни одна мутация не сохранена и пакет можно
// отправить повторно без риска дублей.
func (h *Handler) batch(ctx context.Context, input *batchInput) (*batchOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	results, err := h.service.ApplyBatch(ctx, userID, input.Body.Changes)
	if err != nil {
		return &batchOutput{
			Body: sync.BatchResponse{
				Success: false,
				Error:   err.Error(),
			},
		}, nil
	}

	return &batchOutput{
		Body: sync.BatchResponse{
			Success: true,
			Results: results,
		},
	}, nil
}
