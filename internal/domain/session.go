package domain

import "time"

const SessionStatusActive = "active"

type Session struct {
	ID         string    `json:"id"`
	AgentID    string    `json:"idAgent"`
	LeadID     string    `json:"idLead,omitempty"`
	ContextAI  string    `json:"contextAi"`
	AIResponse string    `json:"aiResponse,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
