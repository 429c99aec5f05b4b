package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Assessor оценивает срочность обращения по жалобам.
type Assessor interface {
	Assess(ctx context.Context, req Request) (*Assessment, error)
}

// HTTPAssessor обращается к внешней службе оценки.
type HTTPAssessor struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger
}

func NewHTTPAssessor(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPAssessor {
	return &HTTPAssessor{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
	}
}

func (a *HTTPAssessor) Assess(ctx context.Context, req Request) (*Assessment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга запроса: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/assess", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := a.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("служба оценки недоступна: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("служба оценки вернула статус: %d", response.StatusCode)
	}

	var result Assessment
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	result.Source = "remote"

	return &result, nil
}

// Service отдаёт оценку внешней службы, а при её недоступности —
// детерминированную локальную. Медработник в поле получает ответ всегда.
type Service struct {
	remote Assessor
	log    *slog.Logger
}

// NewService создаёт службу оценки; remote может быть nil, тогда
// работают только локальные правила.
func NewService(remote Assessor, log *slog.Logger) *Service {
	return &Service{remote: remote, log: log}
}

func (s *Service) Assess(ctx context.Context, req Request) (*Assessment, error) {
	if s.remote != nil {
		result, err := s.remote.Assess(ctx, req)
		if err == nil {
			return result, nil
		}
		s.log.Debug("Внешняя оценка недоступна, локальные правила", "error", err.Error())
	}

	return Fallback(req), nil
}

// Ключевые слова локальных правил. Порядок важен: первый уровень, чьё
// слово встретилось, и есть ответ.
var emergencyKeywords = []string{
	"unconscious", "not breathing", "difficulty breathing", "seizure",
	"severe bleeding", "chest pain", "без сознания", "не дышит", "судороги",
}

var urgentKeywords = []string{
	"high fever", "dehydration", "vomiting blood", "severe pain",
	"высокая температура", "обезвоживание", "сильная боль",
}

// Fallback — детерминированная оценка по ключевым словам. Нарочно
// консервативна: сомнение трактуется в сторону большей срочности для
// детей до пяти лет.
func Fallback(req Request) *Assessment {
	symptoms := strings.ToLower(req.Symptoms)

	for _, kw := range emergencyKeywords {
		if strings.Contains(symptoms, kw) {
			return &Assessment{
				Level:  LevelEmergency,
				Advice: "Немедленно направить в ближайшую больницу.",
				Source: "fallback",
			}
		}
	}

	for _, kw := range urgentKeywords {
		if strings.Contains(symptoms, kw) {
			return &Assessment{
				Level:  LevelUrgent,
				Advice: "Показать врачу в течение суток.",
				Source: "fallback",
			}
		}
	}

	if req.Age > 0 && req.Age < 5 && strings.Contains(symptoms, "fever") {
		return &Assessment{
			Level:  LevelUrgent,
			Advice: "Ребёнок с температурой: показать врачу в течение суток.",
			Source: "fallback",
		}
	}

	return &Assessment{
		Level:  LevelRoutine,
		Advice: "Наблюдение, повторный осмотр при ухудшении.",
		Source: "fallback",
	}
}
