package scheduling

import (
	"context"
	"time"

	"wellnessbook/internal/domain"
)

// AppointmentRepository is the persistence collaborator the scheduler writes
// through. Dates are calendar days; start/end are zero-padded "HH:MM".
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	CountOverlapping(ctx context.Context, providerID int64, date time.Time, start, end string) (int64, error)
	ListForProviderOnDate(ctx context.Context, providerID int64, date time.Time) ([]domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Appointment, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, providerNotes *string) error
	Delete(ctx context.Context, id int64) error
}

// OfferingReader resolves the service being booked so the handler can copy
// its name, duration and price onto the appointment.
type OfferingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

// NotificationSender delivers booking lifecycle notifications. Failures are
// ignored by the scheduler; a lost notification must not fail a booking.
type NotificationSender interface {
	NotifyAppointmentBooked(ctx context.Context, providerUserID int64, a *domain.Appointment) error
	NotifyAppointmentStatus(ctx context.Context, customerUserID int64, a *domain.Appointment) error
}
