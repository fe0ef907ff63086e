package lead

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

// RegisterPublicRoutes вешает приём заявок: формы на сайте шлют лиды
// без токена.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.Create)
}

// RegisterRoutes вешает защищённые операции по лидам (JWT required).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.List)
	rg.PATCH("/leads/:id", h.Patch)
}

// Create принимает заявку с сайта
//
// @Summary Создать лид
// @Description Принимает заявку в легаси-форме (firstName/lastName/phone) или упрощённой (name/contacts)
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body CreateLeadRequest true "Данные заявки"
// @Success 201 {object} CreateLeadResponse "Минимальное подтверждение приёма"
// @Failure 400 {object} map[string]interface{} "Карта ошибок по полям"
// @Router /leads [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, v.Fields)
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, CreateLeadResponse{
		ID:        l.ID,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
	})
}

// List возвращает лиды с фильтрами
//
// @Summary Список лидов
// @Description Фильтры по статусу и агенту, сортировка по дате создания (новые первыми)
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param idAgent query string false "Фильтр по агенту"
// @Param limit query int false "Максимум записей"
// @Param offset query int false "Смещение от начала"
// @Success 200 {array} domain.Lead
// @Router /leads [get]
func (h *Handler) List(c *gin.Context) {
	f := repository.LeadFilter{
		Status:  c.Query("status"),
		AgentID: c.Query("idAgent"),
	}
	// некорректные limit/offset молча игнорируются
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

	leads, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, leads)
}

// Patch частично обновляет лид
//
// @Summary Обновить лид
// @Description Меняет статус и/или назначенного агента; пустой idAgent снимает назначение
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID лида"
// @Param request body UpdateLeadRequest true "Изменяемые поля"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} map[string]interface{} "Не передано ни одного поля"
// @Failure 404 {object} map[string]string "Лид не найден"
// @Router /leads/{id} [patch]
func (h *Handler) Patch(c *gin.Context) {
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if v, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, v.Fields)
			return
		}
		if apperrors.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "lead not found")
			return
		}
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, l)
}
