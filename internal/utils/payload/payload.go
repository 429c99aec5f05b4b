package payload

import (
	"encoding/json"
	"fmt"
	"time"
)

// Пакет payload разбирает нетипизированные данные мутаций, пришедшие от
// мобильного клиента. Значения приходят из json.Unmarshal в map[string]any,
// поэтому числа всегда float64, а даты — строки.

// String извлекает строковое значение.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool извлекает булево значение.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Int64 извлекает целочисленный идентификатор. JSON-числа приходят как
// float64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

// Time разбирает временную метку: RFC3339 или дату без времени.
func Time(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp is not a string")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Extra сериализует нераспознанные поля полезной нагрузки. Возвращает nil,
// если лишних полей нет.
func Extra(extras map[string]any) (json.RawMessage, error) {
	if len(extras) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return nil, fmt.Errorf("marshal extra fields: %w", err)
	}
	return raw, nil
}
