package catalog

import (
	"context"

	"wellnessbook/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.ServiceOffering) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.ServiceOffering, error)
	ListActive(ctx context.Context, category string) ([]domain.ServiceOffering, error)
	Update(ctx context.Context, s *domain.ServiceOffering) error
	Delete(ctx context.Context, id int64) error
}

// ProviderReader gates catalog writes on onboarding approval.
type ProviderReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
}
