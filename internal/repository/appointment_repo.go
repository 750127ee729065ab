package repository

import (
	"context"
	"time"

	"wellnessbook/internal/domain"

	"gorm.io/gorm"
)

// DateLayout is how calendar dates are stored in the appointments table.
// Zero-padded date and HH:MM strings compare correctly as text, which keeps
// the overlap query portable between PostgreSQL and SQLite.
const DateLayout = "2006-01-02"

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Ref             string    `gorm:"column:ref;uniqueIndex"`
	CustomerID      int64     `gorm:"column:customer_id;index"`
	ProviderID      int64     `gorm:"column:provider_id;index"`
	ServiceID       int64     `gorm:"column:service_id"`
	ServiceName     string    `gorm:"column:service_name"`
	ServiceDuration int       `gorm:"column:service_duration"`
	ServicePrice    float64   `gorm:"column:service_price"`
	AppointmentDate string    `gorm:"column:appointment_date;index"`
	StartTime       string    `gorm:"column:start_time"`
	EndTime         string    `gorm:"column:end_time"`
	Status          string    `gorm:"column:status;index"`
	CustomerNotes   *string   `gorm:"column:customer_notes"`
	ProviderNotes   *string   `gorm:"column:provider_notes"`
	TotalPrice      float64   `gorm:"column:total_price"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	date, _ := time.Parse(DateLayout, m.AppointmentDate)

	var customerNotes, providerNotes string
	if m.CustomerNotes != nil {
		customerNotes = *m.CustomerNotes
	}
	if m.ProviderNotes != nil {
		providerNotes = *m.ProviderNotes
	}

	return &domain.Appointment{
		ID:              m.ID,
		Ref:             m.Ref,
		CustomerID:      m.CustomerID,
		ProviderID:      m.ProviderID,
		ServiceID:       m.ServiceID,
		ServiceName:     m.ServiceName,
		ServiceDuration: m.ServiceDuration,
		ServicePrice:    m.ServicePrice,
		AppointmentDate: date,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Status:          domain.AppointmentStatus(m.Status),
		CustomerNotes:   customerNotes,
		ProviderNotes:   providerNotes,
		TotalPrice:      m.TotalPrice,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	var customerNotes, providerNotes *string
	if a.CustomerNotes != "" {
		v := a.CustomerNotes
		customerNotes = &v
	}
	if a.ProviderNotes != "" {
		v := a.ProviderNotes
		providerNotes = &v
	}

	return appointmentModel{
		ID:              a.ID,
		Ref:             a.Ref,
		CustomerID:      a.CustomerID,
		ProviderID:      a.ProviderID,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		ServiceDuration: a.ServiceDuration,
		ServicePrice:    a.ServicePrice,
		AppointmentDate: a.AppointmentDate.Format(DateLayout),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Status:          string(a.Status),
		CustomerNotes:   customerNotes,
		ProviderNotes:   providerNotes,
		TotalPrice:      a.TotalPrice,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// CountOverlapping counts appointments for the provider on the given date
// whose [start_time, end_time) range intersects [start, end). Cancelled and
// no-show appointments do not block the slot. Touching boundaries do not
// count as overlap.
func (r *AppointmentRepository) CountOverlapping(ctx context.Context, providerID int64, date time.Time, start, end string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("provider_id = ? AND appointment_date = ?", providerID, date.Format(DateLayout)).
		Where("status NOT IN ?", []string{string(domain.AppointmentCancelled), string(domain.AppointmentNoShow)}).
		Where("start_time < ? AND ? < end_time", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *AppointmentRepository) ListForProviderOnDate(ctx context.Context, providerID int64, date time.Time) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ? AND appointment_date = ?", providerID, date.Format(DateLayout)).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointments(models), nil
}

func (r *AppointmentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("appointment_date DESC, start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointments(models), nil
}

func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("appointment_date DESC, start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointments(models), nil
}

func (r *AppointmentRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("appointment_date = ?", date.Format(DateLayout)).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointments(models), nil
}

// UpdateStatus sets the status and, when given, the provider notes.
// updated_at is refreshed by gorm on every update.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, providerNotes *string) error {
	updates := map[string]any{"status": string(status)}
	if providerNotes != nil {
		updates["provider_notes"] = *providerNotes
	}
	return r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the row entirely. Administrative cleanup only; cancellation
// goes through UpdateStatus.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&appointmentModel{}, id).Error
}

func toDomainAppointments(models []appointmentModel) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out
}
