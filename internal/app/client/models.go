package client

import (
	"strconv"
	"strings"
	"time"

	"aidpost/internal/domain/sync"
)

// Локальные модели хранят идентификатор строкой: до подтверждения
// сервером это временный идентификатор с маркером, после — десятичная
// запись постоянного числового id. Подмена происходит при сверке, и
// запись о пациенте остаётся той же строкой таблицы. TempID после
// подмены хранит прежний временный идентификатор для корреляции.

// Patient — локальная карточка пациента.
type Patient struct {
	ID          string         `json:"id"`
	TempID      string         `json:"tempId,omitempty"`
	Name        string         `json:"name"`
	Gender      string         `json:"gender"`
	Village     string         `json:"village"`
	PhoneNumber string         `json:"phoneNumber"`
	DateOfBirth string         `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	Extra       map[string]any `json:"extra,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Synced      bool           `json:"synced"`
}

// Consultation — локальная запись о консультации.
type Consultation struct {
	ID        string         `json:"id"`
	TempID    string         `json:"tempId,omitempty"`
	PatientID string         `json:"patientId"`
	Symptoms  string         `json:"symptoms"`
	Notes     string         `json:"notes"`
	Status    string         `json:"status"`
	Extra     map[string]any `json:"extra,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Synced    bool           `json:"synced"`
}

// Activity — локальное событие ленты.
type Activity struct {
	ID        string         `json:"id"`
	TempID    string         `json:"tempId,omitempty"`
	PatientID string         `json:"patientId,omitempty"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Read      bool           `json:"read"`
	Extra     map[string]any `json:"extra,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Synced    bool           `json:"synced"`
}

// Payload собирает полезную нагрузку мутации в клиентском словаре полей.
func (p *Patient) Payload() map[string]any {
	data := map[string]any{
		"name":        p.Name,
		"gender":      p.Gender,
		"village":     p.Village,
		"phoneNumber": p.PhoneNumber,
	}
	if p.DateOfBirth != "" {
		data["dateOfBirth"] = p.DateOfBirth
	}
	for k, v := range p.Extra {
		data[k] = v
	}
	return data
}

func (c *Consultation) Payload() map[string]any {
	data := map[string]any{
		"patientId": refValue(c.PatientID),
		"symptoms":  c.Symptoms,
		"notes":     c.Notes,
	}
	if c.Status != "" {
		data["status"] = c.Status
	}
	for k, v := range c.Extra {
		data[k] = v
	}
	return data
}

func (a *Activity) Payload() map[string]any {
	data := map[string]any{
		"message": a.Message,
		"type":    a.Type,
		"read":    a.Read,
	}
	if a.PatientID != "" {
		data["patientId"] = refValue(a.PatientID)
	}
	for k, v := range a.Extra {
		data[k] = v
	}
	return data
}

// refValue переводит локальную ссылку в проводное значение: временная
// ссылка уходит строкой с маркером, постоянная — числом.
func refValue(id string) any {
	if sync.IsTempID(id) {
		return id
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

// Age считает полных лет на момент now. Локальная оценка для
// отображения в списках; авторитетное значение назначает сервер.
func (p *Patient) Age(now time.Time) int {
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Before(dob.AddDate(years, 0, 0)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// DisplayID возвращает идентификатор для вывода в списках: временные
// идентификаторы длинные, обрезаем до читаемого хвоста.
func DisplayID(id string) string {
	if !sync.IsTempID(id) {
		return id
	}
	trimmed := strings.TrimPrefix(id, sync.TempIDPrefix)
	if len(trimmed) > 8 {
		trimmed = trimmed[:8]
	}
	return "temp:" + trimmed
}
