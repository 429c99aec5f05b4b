package consultation

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "consultations-list",
		Method:      http.MethodGet,
		Path:        "/api/consultations",
		Summary:     "Список консультаций пользователя",
		Tags:        []string{"consultations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "consultations-create",
		Method:      http.MethodPost,
		Path:        "/api/consultations",
		Summary:     "Создать консультацию",
		Tags:        []string{"consultations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "consultations-find",
		Method:      http.MethodGet,
		Path:        "/api/consultations/{id}",
		Summary:     "Получить консультацию",
		Tags:        []string{"consultations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "consultations-update",
		Method:      http.MethodPut,
		Path:        "/api/consultations/{id}",
		Summary:     "Обновить консультацию",
		Tags:        []string{"consultations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "consultations-delete",
		Method:      http.MethodDelete,
		Path:        "/api/consultations/{id}",
		Summary:     "Удалить консультацию",
		Tags:        []string{"consultations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
