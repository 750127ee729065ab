package catalog

import (
	"context"
	"errors"
	"fmt"

	"wellnessbook/internal/domain"
	"wellnessbook/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	services  ServiceRepository
	providers ProviderReader
}

func NewService(services ServiceRepository, providers ProviderReader) *Service {
	return &Service{services: services, providers: providers}
}

type OfferingInput struct {
	Name            string
	Category        string
	Description     string
	DurationMinutes int
	Price           float64
}

// CreateOffering publishes a new bookable service. Only approved providers may
// publish; new offerings start active.
func (s *Service) CreateOffering(ctx context.Context, providerID int64, in OfferingInput) (*domain.ServiceOffering, error) {
	if err := s.requireApproved(ctx, providerID); err != nil {
		return nil, err
	}

	offering := &domain.ServiceOffering{
		ProviderID:      providerID,
		Name:            in.Name,
		Category:        in.Category,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Active:          true,
	}
	if fields := validator.Validate(offering); len(fields) > 0 {
		return nil, ErrValidation
	}

	if err := s.services.Create(ctx, offering); err != nil {
		return nil, fmt.Errorf("create offering: %w", err)
	}
	return offering, nil
}

type OfferingUpdate struct {
	Name            *string
	Category        *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	Active          *bool
}

func (s *Service) UpdateOffering(ctx context.Context, providerID, id int64, in OfferingUpdate) (*domain.ServiceOffering, error) {
	offering, err := s.getOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		offering.Name = *in.Name
	}
	if in.Category != nil {
		offering.Category = *in.Category
	}
	if in.Description != nil {
		offering.Description = *in.Description
	}
	if in.DurationMinutes != nil {
		offering.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		offering.Price = *in.Price
	}
	if in.Active != nil {
		offering.Active = *in.Active
	}

	if fields := validator.Validate(offering); len(fields) > 0 {
		return nil, ErrValidation
	}

	if err := s.services.Update(ctx, offering); err != nil {
		return nil, fmt.Errorf("update offering: %w", err)
	}
	return offering, nil
}

// DeleteOffering removes the row. Appointments keep their snapshot fields, so
// history stays intact.
func (s *Service) DeleteOffering(ctx context.Context, providerID, id int64) error {
	if _, err := s.getOwned(ctx, providerID, id); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete offering: %w", err)
	}
	return nil
}

func (s *Service) GetOffering(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	offering, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offering: %w", err)
	}
	return offering, nil
}

func (s *Service) ListActive(ctx context.Context, category string) ([]domain.ServiceOffering, error) {
	list, err := s.services.ListActive(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return list, nil
}

// ListProviderOfferings returns a provider's catalog. includeInactive is for
// the provider's own dashboard; the public view drops inactive entries.
func (s *Service) ListProviderOfferings(ctx context.Context, providerID int64, includeInactive bool) ([]domain.ServiceOffering, error) {
	list, err := s.services.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list provider offerings: %w", err)
	}
	if includeInactive {
		return list, nil
	}

	active := make([]domain.ServiceOffering, 0, len(list))
	for _, o := range list {
		if o.Active {
			active = append(active, o)
		}
	}
	return active, nil
}

func (s *Service) requireApproved(ctx context.Context, providerID int64) error {
	profile, err := s.providers.GetByUserID(ctx, providerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderNotApproved
		}
		return fmt.Errorf("load provider profile: %w", err)
	}
	if profile.Status != domain.ProviderApproved {
		return ErrProviderNotApproved
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, providerID, id int64) (*domain.ServiceOffering, error) {
	offering, err := s.GetOffering(ctx, id)
	if err != nil {
		return nil, err
	}
	if offering.ProviderID != providerID {
		return nil, ErrNotOwner
	}
	return offering, nil
}
