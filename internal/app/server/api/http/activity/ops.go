package activity

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "activities-list",
		Method:      http.MethodGet,
		Path:        "/api/activities",
		Summary:     "Лента событий пользователя",
		Tags:        []string{"activities"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "activities-create",
		Method:      http.MethodPost,
		Path:        "/api/activities",
		Summary:     "Создать событие",
		Tags:        []string{"activities"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) markReadOp() huma.Operation {
	return huma.Operation{
		OperationID: "activities-mark-read",
		Method:      http.MethodPost,
		Path:        "/api/activities/{id}/read",
		Summary:     "Пометить событие прочитанным",
		Tags:        []string{"activities"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "activities-delete",
		Method:      http.MethodDelete,
		Path:        "/api/activities/{id}",
		Summary:     "Удалить событие",
		Tags:        []string{"activities"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
