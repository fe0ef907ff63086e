package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/domain"
)

// Mock Agent Repository implementing the interface
type mockAgentRepo struct {
	mock.Mock
}

func (m *mockAgentRepo) FindByCredential(ctx context.Context, credential string) (*domain.Agent, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *mockAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(agentID, login, firstName, lastName string) (string, error) {
	args := m.Called(agentID, login, firstName, lastName)
	return args.String(0), args.Error(1)
}

func TestService_Login_Success(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.Agent{
		ID:           "agent-1",
		FirstName:    "Иван",
		LastName:     "Петров",
		Login:        "ipetrov",
		PasswordHash: string(hashed),
	}

	agents.On("FindByCredential", mock.Anything, "ipetrov").Return(existing, nil)
	jwtSvc.On("GenerateToken", "agent-1", "ipetrov", "Иван", "Петров").Return("login-token", nil)

	service := NewService(agents, jwtSvc)

	a, token, err := service.Login(context.Background(), LoginRequest{
		Login:    "  ipetrov  ",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "login-token", token)
	assert.Equal(t, "agent-1", a.ID)
	assert.Empty(t, a.PasswordHash)

	agents.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	existing := &domain.Agent{ID: "agent-1", Login: "ipetrov", PasswordHash: string(hashed)}

	agents.On("FindByCredential", mock.Anything, "ipetrov").Return(existing, nil)

	service := NewService(agents, jwtSvc)

	_, _, err := service.Login(context.Background(), LoginRequest{Login: "ipetrov", Password: "wrong"})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestService_Login_UnknownCredential(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	agents.On("FindByCredential", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(agents, jwtSvc)

	_, _, err := service.Login(context.Background(), LoginRequest{Login: "ghost", Password: "any"})

	// несуществующий логин и неверный пароль неразличимы снаружи
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestService_Login_NoPasswordSet(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	existing := &domain.Agent{ID: "agent-2", Login: "nopass"}

	agents.On("FindByCredential", mock.Anything, "nopass").Return(existing, nil)

	service := NewService(agents, jwtSvc)

	_, _, err := service.Login(context.Background(), LoginRequest{Login: "nopass", Password: "any"})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestService_Me_Success(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	existing := &domain.Agent{
		ID:           "agent-1",
		FirstName:    "Иван",
		LastName:     "Петров",
		City:         "Казань",
		PasswordHash: "hash",
	}

	agents.On("GetByID", mock.Anything, "agent-1").Return(existing, nil)

	service := NewService(agents, jwtSvc)

	a, err := service.Me(context.Background(), "agent-1")

	assert.NoError(t, err)
	assert.Equal(t, "Казань", a.City)
	assert.Empty(t, a.PasswordHash)
}

func TestService_Me_AgentVanished(t *testing.T) {
	agents := new(mockAgentRepo)
	jwtSvc := new(mockJWTService)

	agents.On("GetByID", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(agents, jwtSvc)

	_, err := service.Me(context.Background(), "gone")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
