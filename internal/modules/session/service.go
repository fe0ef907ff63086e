package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/domain"
	"agentcrm/internal/observer"
	"agentcrm/internal/pkg/logger"
	"agentcrm/internal/repository"
)

type Service struct {
	sessions  SessionRepository
	agents    AgentGetter
	leads     LeadLister
	generator Generator
}

func NewService(sessions SessionRepository, agents AgentGetter, leads LeadLister, generator Generator) *Service {
	return &Service{
		sessions:  sessions,
		agents:    agents,
		leads:     leads,
		generator: generator,
	}
}

// Create собирает контекст по последним лидам агента и заводит сессию.
// Недоступный генератор не срывает создание: включается шаблонный текст.
func (s *Service) Create(ctx context.Context, req CreateSessionRequest) (*domain.Session, error) {
	agent, err := s.agents.GetByID(ctx, strings.TrimSpace(req.AgentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	leads, err := s.leads.ListByAgent(ctx, agent.ID, briefingLeadLimit)
	if err != nil {
		return nil, err
	}

	contextText, aiResponse := s.generateContext(ctx, agent, leads)

	sess := &domain.Session{
		ID:         uuid.NewString(),
		AgentID:    agent.ID,
		ContextAI:  contextText,
		AIResponse: aiResponse,
		Status:     domain.SessionStatusActive,
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// generateContext возвращает текст контекста и сырой ответ генератора
// (пустой, если сработал шаблон).
func (s *Service) generateContext(ctx context.Context, agent *domain.Agent, leads []domain.Lead) (string, string) {
	if s.generator != nil {
		prompt := buildPrompt(agent, leads, localTimeFor(agent.City, time.Now()))
		generated, err := s.generator.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(generated) != "" {
			observer.IncAIGeneration("generated")
			return generated, generated
		}
		if err != nil {
			logger.Log.Warn("briefing generation failed, using fallback",
				zap.String("agent_id", agent.ID),
				zap.Error(err))
		}
	}

	observer.IncAIGeneration("fallback")
	return fallbackContext(agent, len(leads)), ""
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *Service) List(ctx context.Context, f repository.SessionFilter) ([]domain.Session, error) {
	return s.sessions.List(ctx, f)
}

// Patch обновляет статус и/или привязку к лиду; без полей — bad request.
// Пустой idLead после trim отвязывает лид.
func (s *Service) Patch(ctx context.Context, id string, req UpdateSessionRequest) (*domain.Session, error) {
	if req.Status == nil && req.LeadID == nil {
		return nil, apperrors.NewValidation(map[string]string{
			"fields": "at least one of status or idLead must be provided",
		})
	}

	upd := repository.SessionUpdate{}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		upd.Status = &status
	}
	if req.LeadID != nil {
		leadID := strings.TrimSpace(*req.LeadID)
		upd.LeadID = &leadID
	}

	updated, err := s.sessions.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}
