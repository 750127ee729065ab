package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wellnessbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	appointments AppointmentRepository
	notifs       NotificationSender
}

func NewService(appointments AppointmentRepository, notifs NotificationSender) *Service {
	return &Service{
		appointments: appointments,
		notifs:       notifs,
	}
}

// BookAppointmentRequest carries the booking input including the service
// snapshot fields the appointment keeps for historical accuracy.
type BookAppointmentRequest struct {
	CustomerID      int64
	ProviderID      int64
	ServiceID       int64
	ServiceName     string
	ServiceDuration int // minutes
	ServicePrice    float64
	Date            string // "2006-01-02"
	StartTime       string // "HH:MM"
	CustomerNotes   string
}

// BookAppointment creates a pending appointment. The overlap check is re-run
// right before the write so two callers racing past an earlier availability
// check cannot both land on the slot; on PostgreSQL the exclusion constraint
// installed during migration backs this up at commit time.
func (s *Service) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*domain.Appointment, error) {
	if req.ServiceDuration <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.ServicePrice < 0 {
		return nil, ErrValidation
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrValidation
	}

	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end := start + req.ServiceDuration
	if end >= minutesPerDay {
		// would cross midnight
		return nil, ErrInvalidTimeRange
	}
	startStr := formatClock(start)
	endStr := formatClock(end)

	cnt, err := s.appointments.CountOverlapping(ctx, req.ProviderID, date, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if cnt > 0 {
		return nil, ErrSlotTaken
	}

	a := &domain.Appointment{
		Ref:             uuid.NewString(),
		CustomerID:      req.CustomerID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		ServiceName:     req.ServiceName,
		ServiceDuration: req.ServiceDuration,
		ServicePrice:    req.ServicePrice,
		AppointmentDate: date,
		StartTime:       startStr,
		EndTime:         endStr,
		Status:          domain.AppointmentPending,
		CustomerNotes:   req.CustomerNotes,
		TotalPrice:      req.ServicePrice,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "appointments_no_overlap" {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAppointmentBooked(ctx, a.ProviderID, a)
	}

	return a, nil
}

// CheckAvailability reports whether [start, end) is free for the provider on
// the given date. Appointments in cancelled or no-show status do not count.
func (s *Service) CheckAvailability(ctx context.Context, providerID int64, dateStr, startStr, endStr string) (bool, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false, ErrValidation
	}

	start, err := parseClock(startStr)
	if err != nil {
		return false, ErrInvalidTimeRange
	}
	end, err := parseClock(endStr)
	if err != nil {
		return false, ErrInvalidTimeRange
	}
	if start >= end {
		return false, ErrInvalidTimeRange
	}

	cnt, err := s.appointments.CountOverlapping(ctx, providerID, date, formatClock(start), formatClock(end))
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	return cnt == 0, nil
}

// GetAvailableTimeSlots generates the candidate slots for the business day
// (09:00-18:00), stepping by the service duration, and marks the ones that
// collide with an existing blocking appointment.
func (s *Service) GetAvailableTimeSlots(ctx context.Context, providerID int64, dateStr string, serviceDuration int) ([]TimeSlot, error) {
	if serviceDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	existing, err := s.appointments.ListForProviderOnDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("load day appointments: %w", err)
	}

	busy := make([]busyRange, 0, len(existing))
	for i := range existing {
		a := &existing[i]
		if !a.BlocksSlot() {
			continue
		}
		start, err := parseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(a.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, busyRange{start: start, end: end, appointmentID: a.ID})
	}

	return buildDaySlots(serviceDuration, busy), nil
}

// UpdateAppointmentStatus applies one edge of the status state machine.
// Anything else, including any move out of a terminal state, fails with
// ErrInvalidTransition before a write is attempted.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, id int64, newStatus domain.AppointmentStatus, providerNotes *string) (*domain.Appointment, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidTransition
	}

	a, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, id, newStatus, providerNotes); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	updated, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		switch newStatus {
		case domain.AppointmentConfirmed, domain.AppointmentCancelled, domain.AppointmentNoShow:
			_ = s.notifs.NotifyAppointmentStatus(ctx, updated.CustomerID, updated)
		}
	}

	return updated, nil
}

// CancelAppointment is a convenience wrapper for the transition to cancelled.
func (s *Service) CancelAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.UpdateAppointmentStatus(ctx, id, domain.AppointmentCancelled, nil)
}

// DeleteAppointment hard-deletes the record, bypassing the state machine.
// Restricted to admins by the HTTP layer.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if _, err := s.getAppointment(ctx, id); err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// CustomerAppointments splits a customer's history for the dashboard.
// "Upcoming" is a derived view, not a stored attribute.
type CustomerAppointments struct {
	Upcoming []domain.Appointment `json:"upcoming"`
	Past     []domain.Appointment `json:"past"`
}

func (s *Service) GetCustomerAppointments(ctx context.Context, customerID int64) (*CustomerAppointments, error) {
	all, err := s.appointments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer appointments: %w", err)
	}

	now := time.Now()
	out := &CustomerAppointments{
		Upcoming: make([]domain.Appointment, 0),
		Past:     make([]domain.Appointment, 0),
	}
	for _, a := range all {
		if a.IsUpcoming(now) {
			out.Upcoming = append(out.Upcoming, a)
		} else {
			out.Past = append(out.Past, a)
		}
	}
	return out, nil
}

// GetProviderAppointments returns the provider's schedule, optionally limited
// to a single day.
func (s *Service) GetProviderAppointments(ctx context.Context, providerID int64, dateStr string) ([]domain.Appointment, error) {
	if dateStr == "" {
		list, err := s.appointments.ListByProvider(ctx, providerID)
		if err != nil {
			return nil, fmt.Errorf("list provider appointments: %w", err)
		}
		return list, nil
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	list, err := s.appointments.ListForProviderOnDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("list provider appointments: %w", err)
	}
	return list, nil
}

func (s *Service) GetAppointmentsByDate(ctx context.Context, dateStr string) ([]domain.Appointment, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	list, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments by date: %w", err)
	}
	return list, nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}
