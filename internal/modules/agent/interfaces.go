package agent

import (
	"context"

	"agentcrm/internal/domain"
	"agentcrm/internal/repository"
)

// AgentRepository defines the interface for agent storage operations
type AgentRepository interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, f repository.AgentFilter) ([]domain.Agent, error)
	Update(ctx context.Context, id string, upd repository.AgentUpdate) (*domain.Agent, error)
	Delete(ctx context.Context, id string) error
	ExistsByLogin(ctx context.Context, login string) (bool, error)
}
