package scheduling

import (
	"errors"
	"net/http"
	"strconv"

	"wellnessbook/internal/domain"
	"wellnessbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service   *Service
	offerings OfferingReader
}

func NewHandler(service *Service, offerings OfferingReader) *Handler {
	return &Handler{service: service, offerings: offerings}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	providers := v1.Group("/providers")
	{
		providers.GET("/:id/slots", h.GetTimeSlots)
		providers.GET("/:id/availability", h.CheckAvailability)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	appts := protected.Group("/appointments")
	{
		appts.POST("", h.Book)
		appts.GET("/me", h.GetMyAppointments)
		appts.GET("/provider", h.GetProviderSchedule)
		appts.GET("/:id", h.GetAppointment)
		appts.PATCH("/:id/status", h.UpdateStatus)
		appts.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	appts := admin.Group("/appointments")
	{
		appts.GET("", h.GetByDate)
		appts.DELETE("/:id", h.Delete)
	}
}

// GetTimeSlots returns the slot catalog for a provider's day. The step is the
// duration of the service being booked, passed either directly or via
// service_id.
func (h *Handler) GetTimeSlots(c *gin.Context) {
	providerID, ok := paramID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required")
		return
	}

	duration := 0
	if s := c.Query("service_id"); s != "" {
		serviceID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service_id")
			return
		}
		offering, err := h.offerings.GetByID(c.Request.Context(), serviceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load service")
			return
		}
		duration = offering.DurationMinutes
	} else if s := c.Query("duration"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid duration")
			return
		}
		duration = v
	}

	slots, err := h.service.GetAvailableTimeSlots(c.Request.Context(), providerID, date, duration)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"provider_id": providerID,
		"date":        date,
		"slots":       slots,
	})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	providerID, ok := paramID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if date == "" || start == "" || end == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date, start and end are required")
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), providerID, date, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"provider_id": providerID,
		"date":        date,
		"start":       start,
		"end":         end,
		"available":   available,
	})
}

func (h *Handler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	offering, err := h.offerings.GetByID(c.Request.Context(), req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load service")
		return
	}
	if !offering.Active {
		response.Error(c, http.StatusConflict, "SERVICE_INACTIVE", "Service is not bookable")
		return
	}

	a, err := h.service.BookAppointment(c.Request.Context(), BookAppointmentRequest{
		CustomerID:      c.GetInt64("user_id"),
		ProviderID:      offering.ProviderID,
		ServiceID:       offering.ID,
		ServiceName:     offering.Name,
		ServiceDuration: offering.DurationMinutes,
		ServicePrice:    offering.Price,
		Date:            req.Date,
		StartTime:       req.StartTime,
		CustomerNotes:   req.CustomerNotes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": appointmentView(a)})
}

func (h *Handler) GetMyAppointments(c *gin.Context) {
	list, err := h.service.GetCustomerAppointments(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"upcoming": appointmentViews(list.Upcoming),
		"past":     appointmentViews(list.Past),
	})
}

func (h *Handler) GetProviderSchedule(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleProvider) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Provider role required")
		return
	}

	list, err := h.service.GetProviderAppointments(c.Request.Context(), c.GetInt64("user_id"), c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": appointmentViews(list)})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	a, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, a) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your appointment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appointmentView(a)})
}

// UpdateStatus walks one edge of the status machine. Only the provider on the
// appointment (or an admin) may do this; customers cancel via /cancel.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	role := c.GetString("role")
	if role != string(domain.RoleAdmin) && a.ProviderID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your appointment")
		return
	}

	updated, err := h.service.UpdateAppointmentStatus(c.Request.Context(), id, domain.AppointmentStatus(req.Status), req.ProviderNotes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appointmentView(updated)})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	a, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, a) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your appointment")
		return
	}

	updated, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": appointmentView(updated)})
}

func (h *Handler) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required")
		return
	}

	list, err := h.service.GetAppointmentsByDate(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": appointmentViews(list)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) canView(c *gin.Context, a *domain.Appointment) bool {
	if c.GetString("role") == string(domain.RoleAdmin) {
		return true
	}
	userID := c.GetInt64("user_id")
	return a.CustomerID == userID || a.ProviderID == userID
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrInvalidTimeRange):
		response.Error(c, http.StatusBadRequest, "INVALID_TIME_RANGE", "Requested time range is invalid")
	case errors.Is(err, ErrInvalidDuration):
		response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "Service duration must be positive")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Time slot is no longer available")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change is not allowed from the current state")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
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
