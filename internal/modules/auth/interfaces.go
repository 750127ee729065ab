package auth

import (
	"context"

	"wellnessbook/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	CreateProviderAccount(ctx context.Context, u *domain.User, p *domain.ProviderProfile) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
