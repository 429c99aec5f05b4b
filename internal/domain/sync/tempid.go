package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Временные идентификаторы генерирует клиент для сущностей, ещё не
// сохранённых на сервере. Они отличимы от постоянных числовых id
// структурно — по фиксированному префиксу. Эвристика намеренно собрана
// в одном месте, а не размазана по обработчикам.

// TempIDPrefix — маркер временного идентификатора.
const TempIDPrefix = "temp_"

// NewTempID возвращает новый временный идентификатор.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID сообщает, выглядит ли значение как временная ссылка.
func IsTempID(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, TempIDPrefix)
}

// IDMap — отображение временных идентификаторов в постоянные в рамках
// одного пакета. Пополняется только результатами create.
type IDMap map[string]int64

// Register связывает временный идентификатор с назначенным сервером.
func (m IDMap) Register(tempID string, id int64) {
	m[tempID] = id
}

// Resolve возвращает постоянный идентификатор для временной ссылки.
func (m IDMap) Resolve(v any) (int64, error) {
	s, _ := v.(string)
	id, ok := m[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTempRef, s)
	}
	return id, nil
}

// refFields перечисляет поля полезной нагрузки, способные нести ссылку на
// другую сущность пакета.
func refFields(model Model) []string {
	switch model {
	case ModelConsultation, ModelActivity:
		return []string{"patientId"}
	}
	return nil
}

// RewriteRefs заменяет временные ссылки в data на постоянные
// идентификаторы. Ссылка обнаруживается структурно, по маркеру, а не по
// типу поля. Неразрешимая ссылка — ошибка, пакет откатывается целиком.
func (m IDMap) RewriteRefs(model Model, data map[string]any) error {
	for _, field := range refFields(model) {
		v, ok := data[field]
		if !ok || !IsTempID(v) {
			continue
		}
		id, err := m.Resolve(v)
		if err != nil {
			return err
		}
		data[field] = id
	}
	return nil
}
