package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/middleware"
	"agentcrm/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

// Login выдаёт JWT по логину и паролю
//
// @Summary Войти
// @Description В поле login принимается логин, email или телефон агента. Ответ на любую ошибку аутентификации одинаковый.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учётные данные"
// @Success 200 {object} map[string]interface{} "Токен и профиль агента"
// @Failure 401 {object} map[string]string "Неверные учётные данные"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if apperrors.IsUnauthorizedError(err) {
			response.Error(c, http.StatusUnauthorized, "invalid login or password")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"agent": gin.H{
			"id":        a.ID,
			"firstName": a.FirstName,
			"lastName":  a.LastName,
			"login":     a.Login,
			"phone":     a.Phone,
			"email":     a.Email,
		},
	})
}

// Me возвращает профиль текущего агента
//
// @Summary Текущий агент
// @Description Расширенный профиль агента по токену
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Agent
// @Failure 404 {object} map[string]string "Агент удалён"
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	agentIDAny, exists := c.Get(middleware.ContextAgentID)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.service.Me(c.Request.Context(), agentIDAny.(string))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "agent not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, a)
}
