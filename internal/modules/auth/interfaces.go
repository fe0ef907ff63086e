package auth

import (
	"context"

	"agentcrm/internal/domain"
)

// AgentRepository — только методы, которые нужны auth-сервису
type AgentRepository interface {
	FindByCredential(ctx context.Context, credential string) (*domain.Agent, error)
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
}
