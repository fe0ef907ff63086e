package session

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.Create)
	rg.GET("/sessions", h.List)
	rg.GET("/sessions/:id", h.GetByID)
	rg.PATCH("/sessions/:id", h.Patch)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "agent not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.SessionFilter{
		AgentID: c.Query("idAgent"),
		Status:  c.Query("status"),
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

	sessions, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) GetByID(c *gin.Context) {
	sess, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "session not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (h *Handler) Patch(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, v.Fields)
			return
		}
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "session not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, sess)
}
