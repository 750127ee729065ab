package domain

import "time"

// Notification types
const (
	NotifAppointmentBooked    = "appointment.booked"
	NotifAppointmentConfirmed = "appointment.confirmed"
	NotifAppointmentCancelled = "appointment.cancelled"
	NotifAppointmentNoShow    = "appointment.no_show"
	NotifOnboardingApproved   = "onboarding.approved"
	NotifOnboardingRejected   = "onboarding.rejected"
)

type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id" gorm:"index"`
	Type      string     `json:"type" gorm:"index"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) IsRead() bool { return n.ReadAt != nil }
