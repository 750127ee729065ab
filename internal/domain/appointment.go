package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no-show"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentInProgress,
		AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Allowed status transitions:
//
//	pending     → confirmed, cancelled, no-show
//	confirmed   → in-progress, cancelled, no-show
//	in-progress → completed
//	completed, cancelled, no-show → (none)
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentCancelled, AppointmentNoShow},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted},
	AppointmentCompleted:  {},
	AppointmentCancelled:  {},
	AppointmentNoShow:     {},
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a booked visit. Service name, duration and price are copied
// from the offering at booking time so historical appointments stay accurate
// when the catalog changes later.
type Appointment struct {
	ID         int64  `json:"id"`
	Ref        string `json:"ref"`
	CustomerID int64  `json:"customer_id" validate:"required"`
	ProviderID int64  `json:"provider_id" validate:"required"`

	ServiceID       int64   `json:"service_id" validate:"required"`
	ServiceName     string  `json:"service_name"`
	ServiceDuration int     `json:"service_duration" validate:"gt=0"`
	ServicePrice    float64 `json:"service_price" validate:"gte=0"`

	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       string    `json:"start_time"` // "HH:MM", 24-hour
	EndTime         string    `json:"end_time"`   // "HH:MM", same day, exclusive

	Status        AppointmentStatus `json:"status"`
	CustomerNotes string            `json:"customer_notes,omitempty"`
	ProviderNotes string            `json:"provider_notes,omitempty"`
	TotalPrice    float64           `json:"total_price" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlocksSlot reports whether the appointment occupies its time range for
// conflict purposes. Cancelled and no-show appointments free the slot.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentNoShow
}

// IsUpcoming classifies the appointment for dashboard views: the date must be
// strictly in the future and the appointment neither cancelled nor completed.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	if !a.AppointmentDate.After(now) {
		return false
	}
	return a.Status != AppointmentCancelled && a.Status != AppointmentCompleted
}
