package provider

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
	v1.GET("/providers", h.ListApproved)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	my := protected.Group("/my/provider")
	{
		my.GET("", h.GetMyProfile)
		my.PATCH("", h.UpdateProfile)
		my.POST("/credentials", h.AddCredentials)
		my.POST("/submit", h.Submit)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	providers := admin.Group("/providers")
	{
		providers.GET("/pending", h.ListPending)
		providers.POST("/:id/approve", h.Approve)
		providers.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) ListApproved(c *gin.Context) {
	list, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"providers": profileViews(list, true)})
}

func (h *Handler) GetMyProfile(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	p, err := h.service.GetMyProfile(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), ProfileInput{
		DisplayName: req.DisplayName,
		Specialty:   req.Specialty,
		Bio:         req.Bio,
		City:        req.City,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
}

func (h *Handler) AddCredentials(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.AddCredentials(c.Request.Context(), c.GetInt64("user_id"), req.Documents)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
}

func (h *Handler) Submit(c *gin.Context) {
	if !h.requireProvider(c) {
		return
	}

	p, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
}

func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"providers": profileViews(list, false)})
}

func (h *Handler) Approve(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.service.Approve(c.Request.Context(), c.GetInt64("user_id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
}

func (h *Handler) Reject(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	p, err := h.service.Reject(c.Request.Context(), c.GetInt64("user_id"), userID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profileView(p)})
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
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Provider profile not found")
	case errors.Is(err, ErrWrongStep):
		response.Error(c, http.StatusConflict, "WRONG_STEP", "Complete the previous onboarding step first")
	case errors.Is(err, ErrAlreadySubmitted):
		response.Error(c, http.StatusConflict, "ALREADY_SUBMITTED", "Profile is already under review or approved")
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", "Profile is not awaiting review")
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
