package sync

// BatchRequest — проводной формат пакета мутаций.
type BatchRequest struct {
	Changes []Mutation `json:"changes"`
}

// BatchResponse — ответ сервера. При успехе — по одному результату на
// каждую мутацию в том же порядке. При неудаче частичных результатов нет:
// сервер гарантирует, что ни одна запись пакета не сохранена.
type BatchResponse struct {
	Success bool             `json:"success"`
	Results []MutationResult `json:"results,omitempty"`
	Error   string           `json:"error,omitempty"`
}
