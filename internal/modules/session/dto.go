package session

// CreateSessionRequest — запрос на сессию-брифинг для агента.
type CreateSessionRequest struct {
	AgentID string `json:"idAgent"`
}

// UpdateSessionRequest — частичное обновление; nil-поле не трогаем,
// пустой idLead отвязывает лид.
type UpdateSessionRequest struct {
	Status *string `json:"status"`
	LeadID *string `json:"idLead"`
}
