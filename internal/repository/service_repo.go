package repository

import (
	"context"

	"wellnessbook/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.ServiceOffering) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.ServiceOffering, error) {
	var out []domain.ServiceOffering
	tx := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("name").Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// ListActive returns publicly bookable offerings, optionally filtered by
// category.
func (r *ServiceRepository) ListActive(ctx context.Context, category string) ([]domain.ServiceOffering, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var out []domain.ServiceOffering
	tx := q.Order("name").Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.ServiceOffering) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.ServiceOffering{}, id).Error
}
