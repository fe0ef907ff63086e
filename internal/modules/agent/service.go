package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/domain"
	"agentcrm/internal/pkg/contact"
	"agentcrm/internal/pkg/validator"
	"agentcrm/internal/repository"
)

type Service struct {
	agents AgentRepository
}

func NewService(agents AgentRepository) *Service {
	return &Service{agents: agents}
}

// Create заводит агента. Уникальность логина проверяется до вставки ради
// понятной ошибки; гонку двух одинаковых логинов ловит уникальный индекс,
// и его нарушение отдаётся той же ошибкой валидации.
func (s *Service) Create(ctx context.Context, req CreateAgentRequest) (*domain.Agent, error) {
	errs := validator.Validate(req)
	if errs == nil {
		errs = map[string]string{}
	}

	if req.Phone != "" && !contact.ValidPhone(req.Phone) {
		errs["phone"] = "invalid phone format"
	}
	if !contact.ValidEmail(strings.TrimSpace(req.Email)) {
		errs["email"] = "invalid email format"
	}

	login := strings.TrimSpace(req.Login)
	if login != "" {
		exists, err := s.agents.ExistsByLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		if exists {
			errs["login"] = "login already exists"
		}
	}

	if len(errs) > 0 {
		return nil, apperrors.NewValidation(errs)
	}

	a := &domain.Agent{
		ID:              uuid.NewString(),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		MiddleName:      strings.TrimSpace(req.MiddleName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Login:           login,
		Website:         strings.TrimSpace(req.Website),
		TelegramChannel: strings.TrimSpace(req.TelegramChannel),
		TelegramBot:     strings.TrimSpace(req.TelegramBot),
		City:            strings.TrimSpace(req.City),
		BankDetails:     strings.TrimSpace(req.BankDetails),
		ReferralLinks:   req.ReferralLinks,
	}

	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}

	if err := s.agents.Create(ctx, a); err != nil {
		if isLoginConflict(err) {
			return nil, apperrors.NewValidation(map[string]string{
				"login": "login already exists",
			})
		}
		return nil, err
	}

	a.PasswordHash = ""
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	a, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	a.PasswordHash = ""
	return a, nil
}

func (s *Service) List(ctx context.Context, f repository.AgentFilter) ([]domain.Agent, error) {
	agents, err := s.agents.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range agents {
		agents[i].PasswordHash = ""
	}
	return agents, nil
}

// Patch меняет любой набор изменяемых полей; без единого поля — bad request.
func (s *Service) Patch(ctx context.Context, id string, req UpdateAgentRequest) (*domain.Agent, error) {
	upd := repository.AgentUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		MiddleName:      req.MiddleName,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		TelegramChannel: req.TelegramChannel,
		TelegramBot:     req.TelegramBot,
		City:            req.City,
		BankDetails:     req.BankDetails,
		ReferralLinks:   req.ReferralLinks,
	}

	if !hasUpdateFields(upd) {
		return nil, apperrors.NewValidation(map[string]string{
			"fields": "at least one field must be provided",
		})
	}

	errs := map[string]string{}
	if req.Phone != nil && (strings.TrimSpace(*req.Phone) == "" || !contact.ValidPhone(*req.Phone)) {
		errs["phone"] = "invalid phone format"
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" && !contact.ValidEmail(strings.TrimSpace(*req.Email)) {
		errs["email"] = "invalid email format"
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidation(errs)
	}

	a, err := s.agents.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	a.PasswordHash = ""
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.agents.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

func hasUpdateFields(upd repository.AgentUpdate) bool {
	return upd.FirstName != nil || upd.LastName != nil || upd.MiddleName != nil ||
		upd.Phone != nil || upd.Email != nil || upd.Website != nil ||
		upd.TelegramChannel != nil || upd.TelegramBot != nil || upd.City != nil ||
		upd.BankDetails != nil || upd.ReferralLinks != nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// isLoginConflict распознаёт нарушение уникальности: postgres отдаёт
// код 23505, sqlite — текст "UNIQUE constraint failed".
func isLoginConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
