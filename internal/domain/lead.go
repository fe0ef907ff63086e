package domain

import "time"

const LeadStatusNew = "new"

type Lead struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	MiddleName    string    `json:"middleName,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Telegram      string    `json:"telegram,omitempty"`
	Email         string    `json:"email,omitempty"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	Comment       string    `json:"comment,omitempty"`
	AgentID       string    `json:"idAgent,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
