package provider

import (
	"context"

	"wellnessbook/internal/domain"
)

type ProviderRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
	Update(ctx context.Context, p *domain.ProviderProfile) error
	ListByStatus(ctx context.Context, status domain.ProviderStatus) ([]domain.ProviderProfile, error)
}

type NotificationSender interface {
	NotifyOnboardingDecision(ctx context.Context, userID int64, p *domain.ProviderProfile) error
}
