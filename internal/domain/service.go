package domain

import "time"

// ServiceOffering is a bookable wellness service published by a provider.
// Appointments copy name, duration and price from here at booking time.
type ServiceOffering struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"provider_id" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	Category        string    `json:"category,omitempty"`
	Description     string    `json:"description,omitempty" gorm:"type:text"`
	DurationMinutes int       `json:"duration_minutes" validate:"gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
