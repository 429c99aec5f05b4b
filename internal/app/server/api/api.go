//регистрация и аутентификация медработников;
//ведение карточек пациентов, консультаций и ленты событий;
//приём пакетов офлайн-мутаций и их атомарная сверка.

//POST /user/register            # Регистрация (публичный)
//POST /user/login               # Логин (публичный)
//GET  /api/health               # Проверка доступности (публичный)
//POST /api/sync/batch           # Применить пакет офлайн-мутаций (auth)
//GET  /api/patients             # Список пациентов (auth)
//POST /api/patients             # Создать пациента (auth)
//GET  /api/patients/{id}        # Получить пациента (auth)
//PUT  /api/patients/{id}        # Обновить пациента (auth)
//DELETE /api/patients/{id}      # Удалить пациента (auth)
//GET  /api/consultations        # Список консультаций (auth)
//POST /api/consultations        # Создать консультацию (auth)
//GET  /api/consultations/{id}   # Получить консультацию (auth)
//PUT  /api/consultations/{id}   # Обновить консультацию (auth)
//DELETE /api/consultations/{id} # Удалить консультацию (auth)
//GET  /api/activities           # Лента событий (auth)
//POST /api/activities           # Создать событие (auth)
//POST /api/activities/{id}/read # Пометить прочитанным (auth)
//DELETE /api/activities/{id}    # Удалить событие (auth)

package api

import (
	activityAPI "aidpost/internal/app/server/api/http/activity"
	consultationAPI "aidpost/internal/app/server/api/http/consultation"
	healthAPI "aidpost/internal/app/server/api/http/health"
	"aidpost/internal/app/server/api/http/middleware"
	"aidpost/internal/app/server/api/http/middleware/auth"
	"aidpost/internal/app/server/api/http/middleware/logger"
	patientAPI "aidpost/internal/app/server/api/http/patient"
	syncAPI "aidpost/internal/app/server/api/http/sync"
	userAPI "aidpost/internal/app/server/api/http/user"
	"aidpost/internal/domain/activity"
	"aidpost/internal/domain/consultation"
	"aidpost/internal/domain/patient"
	"aidpost/internal/domain/session"
	"aidpost/internal/domain/sync"
	"aidpost/internal/domain/user"
	"aidpost/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health       *healthAPI.Handler
	User         *userAPI.Handler
	Patient      *patientAPI.Handler
	Consultation *consultationAPI.Handler
	Activity     *activityAPI.Handler
	Sync         *syncAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Aidpost API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Patient.SetupRoutes(API)
	h.Consultation.SetupRoutes(API)
	h.Activity.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	patientRepo := postgres.NewPatientRepository(storage.Pool(), log)
	patientService := patient.NewService(patientRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	patientHandler := patientAPI.NewHandler(patientService, log, middlewares.GetAllAndClear())

	consultationRepo := postgres.NewConsultationRepository(storage.Pool(), log)
	consultationService := consultation.NewService(consultationRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	consultationHandler := consultationAPI.NewHandler(consultationService, log, middlewares.GetAllAndClear())

	activityRepo := postgres.NewActivityRepository(storage.Pool(), log)
	activityService := activity.NewService(activityRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	activityHandler := activityAPI.NewHandler(activityService, log, middlewares.GetAllAndClear())

	syncRepo := postgres.NewSyncRepository(storage.Pool(), log)
	syncService := sync.NewService(syncRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:       healthHandler,
		User:         userHandler,
		Patient:      patientHandler,
		Consultation: consultationHandler,
		Activity:     activityHandler,
		Sync:         syncHandler,
	}
}
