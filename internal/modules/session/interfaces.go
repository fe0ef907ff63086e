package session

import (
	"context"

	"agentcrm/internal/domain"
	"agentcrm/internal/repository"
)

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context, f repository.SessionFilter) ([]domain.Session, error)
	Update(ctx context.Context, id string, upd repository.SessionUpdate) (*domain.Session, error)
}

// AgentGetter — проверка существования агента и данные для промпта.
type AgentGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
}

// LeadLister отдаёт последние лиды агента для контекста сессии.
type LeadLister interface {
	ListByAgent(ctx context.Context, agentID string, limit int) ([]domain.Lead, error)
}

// Generator — внешний генератор текста. Его ошибки не фатальны:
// сервис подставляет шаблонный контекст.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
