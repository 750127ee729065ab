package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellnessbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	providers ProviderRepository
	notifs    NotificationSender
}

func NewService(providers ProviderRepository, notifs NotificationSender) *Service {
	return &Service{providers: providers, notifs: notifs}
}

func (s *Service) GetMyProfile(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	return s.getProfile(ctx, userID)
}

type ProfileInput struct {
	DisplayName string
	Specialty   string
	Bio         string
	City        string
}

// UpdateProfile fills in the first onboarding step. Editing is closed once the
// profile is submitted or approved; a rejected provider may revise and try
// again.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*domain.ProviderProfile, error) {
	p, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProviderDraft && p.Status != domain.ProviderRejected {
		return nil, ErrAlreadySubmitted
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		return nil, ErrValidation
	}

	p.DisplayName = displayName
	p.Specialty = strings.TrimSpace(in.Specialty)
	p.Bio = strings.TrimSpace(in.Bio)
	p.City = strings.TrimSpace(in.City)
	if p.OnboardingStep < domain.OnboardingStepCredentials {
		p.OnboardingStep = domain.OnboardingStepCredentials
	}

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update provider profile: %w", err)
	}
	return p, nil
}

// AddCredentials records the uploaded credential document references and moves
// the profile to the review step. The profile step must be completed first.
func (s *Service) AddCredentials(ctx context.Context, userID int64, docs []string) (*domain.ProviderProfile, error) {
	p, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProviderDraft && p.Status != domain.ProviderRejected {
		return nil, ErrAlreadySubmitted
	}
	if p.OnboardingStep < domain.OnboardingStepCredentials {
		return nil, ErrWrongStep
	}

	cleaned := make([]string, 0, len(docs))
	for _, d := range docs {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrValidation
	}

	p.CredentialDocs = cleaned
	p.OnboardingStep = domain.OnboardingStepReview

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update provider credentials: %w", err)
	}
	return p, nil
}

// Submit puts the profile into the admin review queue.
func (s *Service) Submit(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	p, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.ProviderPending || p.Status == domain.ProviderApproved {
		return nil, ErrAlreadySubmitted
	}
	if p.OnboardingStep < domain.OnboardingStepReview || len(p.CredentialDocs) == 0 {
		return nil, ErrWrongStep
	}

	now := time.Now()
	p.Status = domain.ProviderPending
	p.SubmittedAt = &now
	p.RejectedReason = ""

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("submit provider profile: %w", err)
	}
	return p, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.ProviderProfile, error) {
	list, err := s.providers.ListByStatus(ctx, domain.ProviderPending)
	if err != nil {
		return nil, fmt.Errorf("list pending providers: %w", err)
	}
	return list, nil
}

func (s *Service) ListApproved(ctx context.Context) ([]domain.ProviderProfile, error) {
	list, err := s.providers.ListByStatus(ctx, domain.ProviderApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved providers: %w", err)
	}
	return list, nil
}

// Approve accepts a pending profile. The provider can publish services from
// this point on.
func (s *Service) Approve(ctx context.Context, adminID, userID int64) (*domain.ProviderProfile, error) {
	return s.review(ctx, adminID, userID, domain.ProviderApproved, "")
}

// Reject sends the profile back to the provider with a reason. The provider
// may revise and resubmit.
func (s *Service) Reject(ctx context.Context, adminID, userID int64, reason string) (*domain.ProviderProfile, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrValidation
	}
	return s.review(ctx, adminID, userID, domain.ProviderRejected, reason)
}

func (s *Service) review(ctx context.Context, adminID, userID int64, status domain.ProviderStatus, reason string) (*domain.ProviderProfile, error) {
	p, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProviderPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	p.Status = status
	p.ReviewedAt = &now
	p.ReviewedBy = &adminID
	p.RejectedReason = reason

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("review provider profile: %w", err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyOnboardingDecision(ctx, userID, p)
	}
	return p, nil
}

func (s *Service) getProfile(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	p, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load provider profile: %w", err)
	}
	return p, nil
}
