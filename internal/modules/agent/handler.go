package agent

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/pkg/response"
	"agentcrm/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes вешает операции, закрытые админ-токеном.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/agents", h.Create)
	rg.DELETE("/agents/:id", h.Delete)
}

// RegisterRoutes вешает операции, доступные по JWT.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/agents", h.List)
	rg.GET("/agents/:id", h.GetByID)
	rg.PATCH("/agents/:id", h.Patch)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, v.Fields)
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.AgentFilter{
		City: c.Query("city"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}

	agents, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, agents)
}

func (h *Handler) GetByID(c *gin.Context) {
	a, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
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

func (h *Handler) Patch(c *gin.Context) {
	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, v.Fields)
			return
		}
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "agent not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "agent not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
