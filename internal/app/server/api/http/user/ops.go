package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Обе операции публичные: это единственные маршруты без bearer-токена,
// кроме health.

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-register",
		Method:      http.MethodPost,
		Path:        "/user/register",
		Summary:     "Регистрация медработника",
		Description: "Создаёт учётную запись и сразу открывает сессию.",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/user/login",
		Summary:     "Вход медработника",
		Description: "Проверяет пару логин/пароль и выдаёт токен сессии.",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}
