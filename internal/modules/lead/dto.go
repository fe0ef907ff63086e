package lead

import "time"

// CreateLeadRequest принимает обе формы интейка: легаси-поля
// (firstName/lastName/phone) и упрощённые (name/contacts).
// Явные поля имеют приоритет над разобранными.
type CreateLeadRequest struct {
	Source        string `json:"source"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	MiddleName    string `json:"middleName"`
	Phone         string `json:"phone"`
	Telegram      string `json:"telegram"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Contacts      string `json:"contacts"`
	PreferredTime string `json:"preferredTime"`
	Comment       string `json:"comment"`
	AgentID       string `json:"idAgent"`
}

// UpdateLeadRequest — частичное обновление; указатель отличает
// «поле не передано» от «передано пустое».
type UpdateLeadRequest struct {
	Status  *string `json:"status"`
	AgentID *string `json:"idAgent"`
}

// CreateLeadResponse — минимальное подтверждение приёма заявки.
type CreateLeadResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
