package repository

import (
	"context"

	"wellnessbook/internal/domain"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.ProviderProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	var p domain.ProviderProfile
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProviderRepository) Update(ctx context.Context, p *domain.ProviderProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// ListByStatus returns profiles in a given onboarding status, oldest first,
// which is the order the review queue shows them in.
func (r *ProviderRepository) ListByStatus(ctx context.Context, status domain.ProviderStatus) ([]domain.ProviderProfile, error) {
	var out []domain.ProviderProfile
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("submitted_at").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}
