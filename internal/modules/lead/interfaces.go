package lead

import (
	"context"

	"agentcrm/internal/domain"
	"agentcrm/internal/repository"
)

// LeadRepository defines the interface for lead storage operations
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, f repository.LeadFilter) ([]domain.Lead, error)
	Update(ctx context.Context, id string, upd repository.LeadUpdate) (*domain.Lead, error)
}

// EventNotifier pushes lead lifecycle events to connected agents
type EventNotifier interface {
	LeadCreated(lead *domain.Lead)
	LeadUpdated(lead *domain.Lead)
}
