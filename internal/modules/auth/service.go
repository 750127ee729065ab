package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellnessbook/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	lockDuration    = 15 * time.Minute
)

type Service struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewService(users UserRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type RegisterProviderInput struct {
	RegisterInput
	DisplayName string
	Specialty   string
	City        string
}

// Register creates a customer account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	u, err := s.newUser(ctx, in, domain.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	return s.withToken(u)
}

// RegisterProvider creates the user together with a draft provider profile.
// The profile starts at the first onboarding step and is not publicly visible
// until an admin approves it.
func (s *Service) RegisterProvider(ctx context.Context, in RegisterProviderInput) (*domain.User, string, error) {
	u, err := s.newUser(ctx, in.RegisterInput, domain.RoleProvider)
	if err != nil {
		return nil, "", err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = u.Name
	}

	profile := &domain.ProviderProfile{
		DisplayName:    displayName,
		Specialty:      in.Specialty,
		City:           in.City,
		OnboardingStep: domain.OnboardingStepProfile,
		Status:         domain.ProviderDraft,
	}

	if err := s.users.CreateProviderAccount(ctx, u, profile); err != nil {
		return nil, "", fmt.Errorf("create provider account: %w", err)
	}

	return s.withToken(u)
}

// Login verifies the password and issues a token. Five consecutive failures
// lock the account for fifteen minutes.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	now := time.Now()
	if u.LockedUntil != nil && u.LockedUntil.After(now) {
		return nil, "", ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		u.FailedLoginAttempts++
		if u.FailedLoginAttempts >= maxFailedLogins {
			until := now.Add(lockDuration)
			u.LockedUntil = &until
			u.FailedLoginAttempts = 0
		}
		if uerr := s.users.Update(ctx, u); uerr != nil {
			return nil, "", fmt.Errorf("record failed login: %w", uerr)
		}
		return nil, "", ErrInvalidCredentials
	}

	if u.FailedLoginAttempts > 0 || u.LockedUntil != nil {
		u.FailedLoginAttempts = 0
		u.LockedUntil = nil
		if err := s.users.Update(ctx, u); err != nil {
			return nil, "", fmt.Errorf("reset login counters: %w", err)
		}
	}

	return s.withToken(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error) {
	u, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrValidation
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *Service) newUser(ctx context.Context, in RegisterInput, role domain.UserRole) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < 8 || strings.TrimSpace(in.Name) == "" {
		return nil, ErrValidation
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
	}, nil
}

func (s *Service) withToken(u *domain.User) (*domain.User, string, error) {
	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
