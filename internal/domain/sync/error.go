package sync

import "errors"

var (
	// ErrValidation — мутация неполна или искажена; пакет отклонён до
	// какой-либо записи.
	ErrValidation = errors.New("invalid mutation")

	// ErrUnknownModel и ErrUnknownKind — защитные ошибки для искажённых
	// пакетов.
	ErrUnknownModel = errors.New("unknown model")
	ErrUnknownKind  = errors.New("unknown mutation kind")

	// ErrUnknownTempRef — мутация ссылается на временный идентификатор,
	// который не был создан раньше в этом же пакете.
	ErrUnknownTempRef = errors.New("unknown temporary reference")

	// ErrUpdateConflict — строка не найдена, принадлежит другому
	// пользователю или серверная копия новее клиентской.
	ErrUpdateConflict = errors.New("update conflict")
)
