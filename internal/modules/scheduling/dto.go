package scheduling

import (
	"wellnessbook/internal/domain"

	"github.com/gin-gonic/gin"
)

type bookRequest struct {
	ServiceID     int64  `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	CustomerNotes string `json:"customer_notes"`
}

type updateStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	ProviderNotes *string `json:"provider_notes"`
}

// statusMeta is presentation data for dashboards. It stays out of the domain
// on purpose.
var statusMeta = map[domain.AppointmentStatus]struct {
	Label string
	Color string
}{
	domain.AppointmentPending:    {"Pending", "amber"},
	domain.AppointmentConfirmed:  {"Confirmed", "green"},
	domain.AppointmentInProgress: {"In progress", "blue"},
	domain.AppointmentCompleted:  {"Completed", "gray"},
	domain.AppointmentCancelled:  {"Cancelled", "red"},
	domain.AppointmentNoShow:     {"No-show", "orange"},
}

func appointmentView(a *domain.Appointment) gin.H {
	meta := statusMeta[a.Status]
	return gin.H{
		"id":               a.ID,
		"ref":              a.Ref,
		"customer_id":      a.CustomerID,
		"provider_id":      a.ProviderID,
		"service_id":       a.ServiceID,
		"service_name":     a.ServiceName,
		"service_duration": a.ServiceDuration,
		"service_price":    a.ServicePrice,
		"date":             a.AppointmentDate.Format(dateLayout),
		"start_time":       a.StartTime,
		"end_time":         a.EndTime,
		"status":           a.Status,
		"status_label":     meta.Label,
		"status_color":     meta.Color,
		"customer_notes":   a.CustomerNotes,
		"provider_notes":   a.ProviderNotes,
		"total_price":      a.TotalPrice,
		"created_at":       a.CreatedAt,
		"updated_at":       a.UpdatedAt,
	}
}

func appointmentViews(list []domain.Appointment) []gin.H {
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, appointmentView(&list[i]))
	}
	return out
}
