package client

import (
	"fmt"
	"strconv"
	"time"

	"aidpost/internal/domain/sync"
)

// LogEntry — запись журнала мутаций. Журнал только растёт в хвост и
// усекается с головы после подтверждения сервером; записи между этими
// моментами неизменяемы.
type LogEntry struct {
	Seq           int64
	Model         sync.Model
	Kind          sync.Kind
	EntityID      string
	Data          map[string]any
	LastUpdatedAt *time.Time
	CreatedAt     time.Time
}

// MutationLog — слой журнала поверх локального хранилища: запись
// намерений и сборка пакета для отправки.
type MutationLog struct {
	storage *SQLiteStorage
}

func NewMutationLog(storage *SQLiteStorage) *MutationLog {
	return &MutationLog{storage: storage}
}

// RecordCreate добавляет в журнал создание сущности с временным
// идентификатором.
func (l *MutationLog) RecordCreate(model sync.Model, tempID string, data map[string]any) error {
	return l.storage.AppendMutation(&LogEntry{
		Model:     model,
		Kind:      sync.KindCreate,
		EntityID:  tempID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	})
}

// RecordUpdate добавляет в журнал изменение сущности. lastUpdatedAt —
// локальное время правки, сервер сравнит его с серверной версией строки.
func (l *MutationLog) RecordUpdate(model sync.Model, entityID string, data map[string]any, lastUpdatedAt time.Time) error {
	return l.storage.AppendMutation(&LogEntry{
		Model:         model,
		Kind:          sync.KindUpdate,
		EntityID:      entityID,
		Data:          data,
		LastUpdatedAt: &lastUpdatedAt,
		CreatedAt:     time.Now().UTC(),
	})
}

// RecordDelete добавляет в журнал удаление сущности.
func (l *MutationLog) RecordDelete(model sync.Model, entityID string) error {
	return l.storage.AppendMutation(&LogEntry{
		Model:     model,
		Kind:      sync.KindDelete,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	})
}

// CurrentBatch собирает накопленный журнал в проводной пакет. Возвращает
// также seq последней записи: после подтверждения журнал усекается ровно
// до неё, и записи, добавленные во время отправки, не теряются.
func (l *MutationLog) CurrentBatch() ([]sync.Mutation, int64, error) {
	entries, err := l.storage.PendingMutations()
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return nil, 0, nil
	}

	mutations := make([]sync.Mutation, 0, len(entries))
	maxSeq := int64(0)
	for _, e := range entries {
		m := sync.Mutation{
			Model:         e.Model,
			Kind:          e.Kind,
			Data:          e.Data,
			LastUpdatedAt: e.LastUpdatedAt,
		}

		if sync.IsTempID(e.EntityID) {
			m.TempID = e.EntityID
		} else {
			id, err := strconv.ParseInt(e.EntityID, 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("некорректный идентификатор в журнале: %q", e.EntityID)
			}
			m.ID = id
		}

		mutations = append(mutations, m)
		if e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}

	return mutations, maxSeq, nil
}

// Acknowledge усекает журнал после успешной сверки.
func (l *MutationLog) Acknowledge(maxSeq int64) error {
	return l.storage.DeleteMutationsUpTo(maxSeq)
}

// PendingCount возвращает число неотправленных записей.
func (l *MutationLog) PendingCount() (int, error) {
	return l.storage.CountPendingMutations()
}
