package consultation

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"aidpost/internal/app/server/api/http/middleware/auth"
	"aidpost/internal/domain/consultation"
)

type Handler struct {
	service    consultation.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service consultation.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	consultations, err := h.service.List(ctx, userID, input.PatientID)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Status: "Ok", Consultations: consultations},
	}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: findResponse{Status: "Ok", Consultation: c},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: findResponse{Status: "Ok", Consultation: c},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: findResponse{Status: "Ok", Consultation: c},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &deleteOutput{
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, consultation.ErrNotFound):
		return huma.Error404NotFound("Consultation not found")
	case errors.Is(err, consultation.ErrConflict):
		return huma.Error409Conflict("Consultation was modified concurrently")
	case errors.Is(err, consultation.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return err
}
