package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/domain"
)

type jwtService interface {
	GenerateToken(agentID, login, firstName, lastName string) (string, error)
}

type Service struct {
	agents AgentRepository
	jwt    jwtService
}

func NewService(agents AgentRepository, jwt jwtService) *Service {
	return &Service{agents: agents, jwt: jwt}
}

// Login сверяет пару логин/пароль и выдаёт токен. Любой провал отдаётся
// одинаковой ошибкой: нельзя раскрывать, существует ли аккаунт.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Agent, string, error) {
	credential := strings.TrimSpace(req.Login)

	a, err := s.agents.FindByCredential(ctx, credential)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}

	// пустой хэш — вход для агента не настроен
	if a.PasswordHash == "" {
		return nil, "", apperrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwt.GenerateToken(a.ID, a.Login, a.FirstName, a.LastName)
	if err != nil {
		return nil, "", err
	}

	a.PasswordHash = ""
	return a, token, nil
}

// Me возвращает расширенный профиль текущего агента.
func (s *Service) Me(ctx context.Context, agentID string) (*domain.Agent, error) {
	a, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	a.PasswordHash = ""
	return a, nil
}
