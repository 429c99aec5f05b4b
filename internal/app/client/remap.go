package client

import (
	"fmt"
	"strconv"

	"aidpost/internal/domain/sync"
)

// ApplyResults применяет результаты сверки к локальной базе: временные
// идентификаторы подменяются постоянными, строки помечаются
// синхронизированными. Повторное применение того же ответа безвредно —
// строк с временными идентификаторами после первого прохода уже нет, а
// повторная пометка synced ничего не меняет. Это важно: ответ сервера
// может прийти, а подтверждение журнала — не успеть записаться.
func ApplyResults(storage *SQLiteStorage, results []sync.MutationResult) error {
	for _, r := range results {
		switch r.Kind {
		case sync.KindCreate:
			if r.TempID == "" || r.ID <= 0 {
				return fmt.Errorf("некорректный результат создания: tempId=%q id=%d", r.TempID, r.ID)
			}
			if err := storage.RemapID(r.Model, r.TempID, strconv.FormatInt(r.ID, 10)); err != nil {
				return err
			}
		case sync.KindUpdate:
			if err := storage.MarkSynced(r.Model, strconv.FormatInt(r.ID, 10)); err != nil {
				return err
			}
		case sync.KindDelete:
			// Строка удалена локально ещё при записи мутации.
		}
	}
	return nil
}
