package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"wellnessbook/internal/domain"
	"wellnessbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/services", h.ListActive)
	v1.GET("/services/:id", h.Get)
	v1.GET("/providers/:id/services", h.ListForProvider)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	my := protected.Group("/my/services")
	{
		my.GET("", h.ListMine)
		my.POST("", h.Create)
		my.PATCH("/:id", h.Update)
		my.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) ListActive(c *gin.Context) {
	list, err := h.service.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": offeringViews(list)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	offering, err := h.service.GetOffering(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": offeringView(offering)})
}

func (h *Handler) ListForProvider(c *gin.Context) {
	providerID, ok := paramID(c)
	if !ok {
		return
	}

	list, err := h.service.ListProviderOfferings(c.Request.Context(), providerID, false)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": offeringViews(list)})
}

func (h *Handler) ListMine(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	list, err := h.service.ListProviderOfferings(c.Request.Context(), c.GetInt64("user_id"), true)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": offeringViews(list)})
}

func (h *Handler) Create(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	var req createOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	offering, err := h.service.CreateOffering(c.Request.Context(), c.GetInt64("user_id"), OfferingInput{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"service": offeringView(offering)})
}

func (h *Handler) Update(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req updateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	offering, err := h.service.UpdateOffering(c.Request.Context(), c.GetInt64("user_id"), id, OfferingUpdate{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          req.Active,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": offeringView(offering)})
}

func (h *Handler) Delete(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOffering(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) requireProvider(c *gin.Context) bool {
	if c.GetString("role") != string(domain.RoleProvider) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Provider role required")
		return false
	}
	return true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your service")
	case errors.Is(err, ErrProviderNotApproved):
		response.Error(c, http.StatusForbidden, "PROVIDER_NOT_APPROVED", "Complete onboarding before publishing services")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
