package patient

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-list",
		Method:      http.MethodGet,
		Path:        "/api/patients",
		Summary:     "Список пациентов пользователя",
		Tags:        []string{"patients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-create",
		Method:      http.MethodPost,
		Path:        "/api/patients",
		Summary:     "Создать пациента",
		Tags:        []string{"patients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-find",
		Method:      http.MethodGet,
		Path:        "/api/patients/{id}",
		Summary:     "Получить пациента",
		Tags:        []string{"patients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-update",
		Method:      http.MethodPut,
		Path:        "/api/patients/{id}",
		Summary:     "Обновить пациента",
		Tags:        []string{"patients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-delete",
		Method:      http.MethodDelete,
		Path:        "/api/patients/{id}",
		Summary:     "Удалить пациента",
		Tags:        []string{"patients"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
