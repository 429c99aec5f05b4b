package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	domainsync "aidpost/internal/domain/sync"
)

// SyncService управляет сверкой локального журнала с сервером.
// Алгоритм намеренно прост: весь накопленный журнал уходит одним
// пакетом, сервер применяет его атомарно, клиент применяет ответ и
// усекает журнал. Частичных состояний не бывает ни на одной стороне.
type SyncService struct {
	app *App
	log *slog.Logger

	mu        sync.Mutex
	isSyncing bool
	lastSync  time.Time
	lastError string

	// notify будит цикл автосинхронизации при появлении новых мутаций.
	notify chan struct{}
}

// SyncResult — итог одного прохода сверки.
type SyncResult struct {
	Success   bool          `json:"success"`
	Skipped   bool          `json:"skipped,omitempty"`
	Uploaded  int           `json:"uploaded"`
	Remapped  int           `json:"remapped"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	StartTime time.Time     `json:"start_time"`
}

func NewSyncService(app *App) *SyncService {
	return &SyncService{
		app:    app,
		log:    app.log,
		notify: make(chan struct{}, 1),
	}
}

// Notify сигнализирует о новой записи в журнале. Неблокирующая отправка:
// одного ожидающего сигнала достаточно.
func (s *SyncService) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Sync выполняет один проход сверки. Повторный вход невозможен:
// параллельный вызов не делает ничего, журнал не отправляется дважды.
// Идущий проход и так заберёт весь журнал, поэтому второй триггер —
// не ошибка.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		s.log.Debug("Сверка уже идёт, повторный запуск пропущен")
		return &SyncResult{Skipped: true, StartTime: time.Now()}, nil
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	result := &SyncResult{StartTime: time.Now()}
	finish := func(err error) (*SyncResult, error) {
		result.Duration = time.Since(result.StartTime)
		s.mu.Lock()
		if err != nil {
			s.lastError = err.Error()
		} else {
			s.lastError = ""
			s.lastSync = time.Now()
		}
		s.mu.Unlock()
		if err != nil {
			result.Error = err.Error()
			return result, err
		}
		result.Success = true
		return result, nil
	}

	if err := s.preSyncChecks(ctx); err != nil {
		return finish(err)
	}

	mutations, maxSeq, err := s.app.mutationLog.CurrentBatch()
	if err != nil {
		return finish(fmt.Errorf("ошибка чтения журнала: %w", err))
	}
	if len(mutations) == 0 {
		s.log.Debug("Журнал пуст, синхронизация не требуется")
		return finish(nil)
	}

	s.log.Info("Начало синхронизации", "mutations", len(mutations))

	resp, err := s.app.httpClient.SyncBatch(ctx, domainsync.BatchRequest{Changes: mutations})
	if err != nil {
		// Транспортная ошибка: журнал цел, повторим при следующем
		// подключении.
		return finish(err)
	}

	if !resp.Success {
		// Деловой отказ: сервер ничего не сохранил. Журнал остаётся,
		// пользователь видит причину и правит данные.
		return finish(fmt.Errorf("сервер отклонил пакет: %s", resp.Error))
	}

	if err := ApplyResults(s.app.storage, resp.Results); err != nil {
		// Ответ сервера уже применён частично к локальной базе; повторное
		// применение идемпотентно, журнал пока не усекаем.
		return finish(fmt.Errorf("ошибка применения результатов: %w", err))
	}

	if err := s.app.mutationLog.Acknowledge(maxSeq); err != nil {
		return finish(fmt.Errorf("ошибка усечения журнала: %w", err))
	}

	result.Uploaded = len(mutations)
	for _, r := range resp.Results {
		if r.Kind == domainsync.KindCreate {
			result.Remapped++
		}
	}

	s.log.Info("Синхронизация завершена",
		"uploaded", result.Uploaded,
		"remapped", result.Remapped,
	)

	return finish(nil)
}

// preSyncChecks проверяет условия для синхронизации
func (s *SyncService) preSyncChecks(ctx context.Context) error {
	if !s.app.IsAuthenticated() {
		return errors.New("требуется вход в систему")
	}

	if err := s.app.httpClient.HealthCheck(ctx); err != nil {
		return err
	}

	return nil
}

// StartAutoSync запускает фоновый цикл: сверка по сигналу о новой
// мутации (с выдержкой, чтобы серия правок ушла одним пакетом) и
// периодическая — на случай, если сервер был недоступен.
func (s *SyncService) StartAutoSync(ctx context.Context) {
	debounce := time.Duration(s.app.config.SyncDebounceMS) * time.Millisecond
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
			timer := time.NewTimer(debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		case <-ticker.C:
		}

		if _, err := s.Sync(ctx); err != nil {
			s.log.Debug("Автосинхронизация отложена", "error", err.Error())
		}
	}
}

// IsSyncing сообщает, идёт ли сверка прямо сейчас.
func (s *SyncService) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSyncing
}

// GetLastSyncTime возвращает время последней успешной сверки.
func (s *SyncService) GetLastSyncTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// LastError возвращает текст последней ошибки сверки.
func (s *SyncService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
