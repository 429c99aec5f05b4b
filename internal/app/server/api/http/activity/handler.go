package activity

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"aidpost/internal/app/server/api/http/middleware/auth"
	"aidpost/internal/domain/activity"
)

type Handler struct {
	service    activity.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service activity.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.markReadOp(), h.markRead)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	activities, err := h.service.List(ctx, userID, input.Unread)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Status: "Ok", Activities: activities},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	a, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}

	return &createOutput{
		Body: createResponse{Status: "Ok", Activity: a},
	}, nil
}

func (h *Handler) markRead(ctx context.Context, input *markReadInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.MarkRead(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &statusOutput{
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, activity.ErrNotFound):
		return huma.Error404NotFound("Activity not found")
	case errors.Is(err, activity.ErrConflict):
		return huma.Error409Conflict("Activity was modified concurrently")
	case errors.Is(err, activity.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return err
}
