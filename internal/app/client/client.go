package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"aidpost/internal/app/client/config"
	"aidpost/internal/domain/sync"
	"aidpost/internal/domain/user"
)

// App — клиентское приложение медработника. Все правки сначала ложатся
// в локальную базу и журнал мутаций; сеть нужна только для сверки.
type App struct {
	config        *config.Config
	log           *slog.Logger
	httpClient    *httpClient
	storage       *SQLiteStorage
	mutationLog   *MutationLog
	syncService   *SyncService
	state         *AppState
	authenticated bool
	mu            gosync.RWMutex
}

// AppState хранит состояние приложения
type AppState struct {
	UserLogin string    `json:"user_login"`
	LastSync  time.Time `json:"last_sync"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	state, err := loadAppState(cfg)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}

	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	storage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации локальной базы: %w", err)
	}

	app := &App{
		config:      cfg,
		log:         log,
		httpClient:  httpCl,
		storage:     storage,
		mutationLog: NewMutationLog(storage),
		state:       state,
	}

	app.syncService = NewSyncService(app)

	// Загружаем токен если он есть
	if token, err := app.GetToken(); err == nil && token != "" {
		httpCl.SetToken(token)
		app.mu.Lock()
		app.authenticated = true
		app.mu.Unlock()
		log.Debug("Токен загружен из файла")
	}

	return app, nil
}

func loadAppState(cfg *config.Config) (*AppState, error) {
	statePath := cfg.ConfigDir + "/state.json"

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		return &AppState{}, nil
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (a *App) saveAppState() error {
	statePath := a.config.ConfigDir + "/state.json"
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(statePath, data, 0600)
}

func (a *App) Close() error {
	return a.storage.Close()
}

// CheckConnection проверяет доступность сервера
func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

// ==================== Auth ====================

func (a *App) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.authenticated {
		token, err := a.GetToken()
		if err == nil && token != "" {
			a.authenticated = true
		}
	}

	return a.authenticated
}

// GetToken возвращает сохраненный токен
func (a *App) GetToken() (string, error) {
	tokenBytes, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("токен не найден. Выполните вход: aidpost auth login")
		}
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return string(tokenBytes), nil
}

// SaveToken сохраняет токен аутентификации
func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	a.httpClient.SetToken(token)

	return nil
}

// ClearToken удаляет токен
func (a *App) ClearToken() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.authenticated = false
	a.state.UserLogin = ""

	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}

	if err := a.saveAppState(); err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	return nil
}

// Register регистрирует нового пользователя
func (a *App) Register(ctx context.Context, req user.BaseRequest) error {
	if err := a.httpClient.Register(ctx, req.Login, req.Password); err != nil {
		return err
	}

	a.log.Info("Пользователь успешно зарегистрирован", "login", req.Login)
	return nil
}

// Login выполняет вход пользователя
func (a *App) Login(ctx context.Context, req user.BaseRequest) (string, error) {
	token, err := a.httpClient.Login(ctx, req.Login, req.Password)
	if err != nil {
		return "", err
	}

	if err = a.SaveToken(token); err != nil {
		return "", fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	a.mu.Lock()
	a.authenticated = true
	a.state.UserLogin = req.Login

	if err = a.saveAppState(); err != nil {
		a.log.Warn("Не удалось сохранить состояние", "error", err)
	}
	a.mu.Unlock()

	a.log.Info("Вход выполнен успешно", "login", req.Login)
	return token, nil
}

// ==================== Patients ====================

type PatientRequest struct {
	Name        string
	Gender      string
	Village     string
	PhoneNumber string
	DateOfBirth string // YYYY-MM-DD
	Extra       map[string]any
}

// CreatePatient создаёт карточку локально и записывает мутацию в журнал.
// Возвращает временный идентификатор; постоянный появится после сверки.
func (a *App) CreatePatient(req PatientRequest) (*Patient, error) {
	tempID := sync.NewTempID()
	p := &Patient{
		ID:          tempID,
		TempID:      tempID,
		Name:        req.Name,
		Gender:      req.Gender,
		Village:     req.Village,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		Extra:       req.Extra,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := a.storage.SavePatient(p); err != nil {
		return nil, err
	}

	if err := a.mutationLog.RecordCreate(sync.ModelPatient, p.ID, p.Payload()); err != nil {
		return nil, err
	}

	a.syncService.Notify()
	return p, nil
}

// UpdatePatient применяет правку локально и дописывает мутацию.
func (a *App) UpdatePatient(id string, req PatientRequest) (*Patient, error) {
	p, err := a.storage.GetPatient(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	data := map[string]any{}

	if req.Name != "" && req.Name != p.Name {
		p.Name = req.Name
		data["name"] = req.Name
	}
	if req.Gender != "" && req.Gender != p.Gender {
		p.Gender = req.Gender
		data["gender"] = req.Gender
	}
	if req.Village != "" && req.Village != p.Village {
		p.Village = req.Village
		data["village"] = req.Village
	}
	if req.PhoneNumber != "" && req.PhoneNumber != p.PhoneNumber {
		p.PhoneNumber = req.PhoneNumber
		data["phoneNumber"] = req.PhoneNumber
	}
	if req.DateOfBirth != "" && req.DateOfBirth != p.DateOfBirth {
		p.DateOfBirth = req.DateOfBirth
		data["dateOfBirth"] = req.DateOfBirth
	}
	for k, v := range req.Extra {
		if p.Extra == nil {
			p.Extra = map[string]any{}
		}
		p.Extra[k] = v
		data[k] = v
	}

	if len(data) == 0 {
		return p, nil
	}

	p.UpdatedAt = now
	p.Synced = false

	if err := a.storage.SavePatient(p); err != nil {
		return nil, err
	}

	if err := a.mutationLog.RecordUpdate(sync.ModelPatient, p.ID, data, now); err != nil {
		return nil, err
	}

	a.syncService.Notify()
	return p, nil
}

// DeletePatient удаляет карточку локально и дописывает мутацию.
func (a *App) DeletePatient(id string) error {
	if err := a.storage.DeletePatient(id); err != nil {
		return err
	}

	if err := a.mutationLog.RecordDelete(sync.ModelPatient, id); err != nil {
		return err
	}

	a.syncService.Notify()
	return nil
}

func (a *App) GetPatient(id string) (*Patient, error) {
	return a.storage.GetPatient(id)
}

func (a *App) ListPatients() ([]*Patient, error) {
	return a.storage.ListPatients()
}

// ==================== Consultations ====================

type ConsultationRequest struct {
	PatientID string
	Symptoms  string
	Notes     string
	Status    string
	Extra     map[string]any
}

// CreateConsultation создаёт запись о приёме. Ссылка на пациента может
// быть временной: сервер перепишет её при сверке того же пакета.
func (a *App) CreateConsultation(req ConsultationRequest) (*Consultation, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("консультация требует пациента")
	}
	if _, err := a.storage.GetPatient(req.PatientID); err != nil {
		return nil, err
	}

	tempID := sync.NewTempID()
	c := &Consultation{
		ID:        tempID,
		TempID:    tempID,
		PatientID: req.PatientID,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
		Status:    req.Status,
		Extra:     req.Extra,
		UpdatedAt: time.Now().UTC(),
	}

	if err := a.storage.SaveConsultation(c); err != nil {
		return nil, err
	}

	if err := a.mutationLog.RecordCreate(sync.ModelConsultation, c.ID, c.Payload()); err != nil {
		return nil, err
	}

	a.syncService.Notify()
	return c, nil
}

// UpdateConsultation применяет правку локально и дописывает мутацию.
func (a *App) UpdateConsultation(id string, req ConsultationRequest) (*Consultation, error) {
	c, err := a.storage.GetConsultation(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	data := map[string]any{}

	if req.Symptoms != "" && req.Symptoms != c.Symptoms {
		c.Symptoms = req.Symptoms
		data["symptoms"] = req.Symptoms
	}
	if req.Notes != "" && req.Notes != c.Notes {
		c.Notes = req.Notes
		data["notes"] = req.Notes
	}
	if req.Status != "" && req.Status != c.Status {
		c.Status = req.Status
		data["status"] = req.Status
	}
	for k, v := range req.Extra {
		if c.Extra == nil {
			c.Extra = map[string]any{}
		}
		c.Extra[k] = v
		data[k] = v
	}

	if len(data) == 0 {
		return c, nil
	}

	c.UpdatedAt = now
	c.Synced = false

	if err := a.storage.SaveConsultation(c); err != nil {
		return nil, err
	}

	if err := a.mutationLog.RecordUpdate(sync.ModelConsultation, c.ID, data, now); err != nil {
		return nil, err
	}

	a.syncService.Notify()
	return c, nil
}

func (a *App) DeleteConsultation(id string) error {
	if err := a.storage.DeleteConsultation(id); err != nil {
		return err
	}

	if err := a.mutationLog.RecordDelete(sync.ModelConsultation, id); err != nil {
		return err
	}

	a.syncService.Notify()
	return nil
}

func (a *App) GetConsultation(id string) (*Consultation, error) {
	return a.storage.GetConsultation(id)
}

func (a *App) ListConsultations(patientID string) ([]*Consultation, error) {
	return a.storage.ListConsultations(patientID)
}

// ==================== Activities ====================

type ActivityRequest struct {
	PatientID string
	Message   string
	Type      string
	Extra     map[string]any
}

func (a *App) CreateActivity(req ActivityRequest) (*Activity, error) {
	tempID := sync.NewTempID()
	act := &Activity{
		ID:        tempID,
		TempID:    tempID,
		PatientID: req.PatientID,
		Message:   req.Message,
		Type:      req.Type,
		Extra:     req.Extra,
		UpdatedAt: time.Now().UTC(),
	}

	if err := a.storage.SaveActivity(act); err != nil {
		return nil, err
	}

	if err := a.mutationLog.RecordCreate(sync.ModelActivity, act.ID, act.Payload()); err != nil {
		return nil, err
	}

	a.syncService.Notify()
	return act, nil
}

// MarkActivityRead помечает событие прочитанным.
func (a *App) MarkActivityRead(id string) error {
	act, err := a.storage.GetActivity(id)
	if err != nil {
		return err
	}
	if act.Read {
		return nil
	}

	now := time.Now().UTC()
	act.Read = true
	act.UpdatedAt = now
	act.Synced = false

	if err := a.storage.SaveActivity(act); err != nil {
		return err
	}

	if err := a.mutationLog.RecordUpdate(sync.ModelActivity, id, map[string]any{"read": true}, now); err != nil {
		return err
	}

	a.syncService.Notify()
	return nil
}

func (a *App) DeleteActivity(id string) error {
	if err := a.storage.DeleteActivity(id); err != nil {
		return err
	}

	if err := a.mutationLog.RecordDelete(sync.ModelActivity, id); err != nil {
		return err
	}

	a.syncService.Notify()
	return nil
}

func (a *App) ListActivities(unreadOnly bool) ([]*Activity, error) {
	return a.storage.ListActivities(unreadOnly)
}

// ==================== Sync ====================

// Sync запускает сверку журнала с сервером.
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	result, err := a.syncService.Sync(ctx)
	if err == nil && !result.Skipped {
		a.mu.Lock()
		a.state.LastSync = time.Now()
		if serr := a.saveAppState(); serr != nil {
			a.log.Warn("Не удалось сохранить состояние", "error", serr)
		}
		a.mu.Unlock()
	}
	return result, err
}

func (a *App) GetSyncService() *SyncService {
	return a.syncService
}

// PendingCount возвращает число неотправленных мутаций.
func (a *App) PendingCount() (int, error) {
	return a.mutationLog.PendingCount()
}

func (a *App) UserLogin() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.UserLogin
}
