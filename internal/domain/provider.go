package domain

import "time"

type ProviderStatus string

const (
	ProviderDraft    ProviderStatus = "draft"
	ProviderPending  ProviderStatus = "pending"
	ProviderApproved ProviderStatus = "approved"
	ProviderRejected ProviderStatus = "rejected"
)

// Onboarding steps. A profile at step N has completed every step below N.
const (
	OnboardingStepProfile     = 1
	OnboardingStepCredentials = 2
	OnboardingStepReview      = 3
)

// ProviderProfile holds the onboarding state and public card of a provider.
// One row per user with RoleProvider.
type ProviderProfile struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty,omitempty"`
	Bio         string `json:"bio,omitempty"`
	City        string `json:"city,omitempty"`

	CredentialDocs []string `json:"credential_docs,omitempty" gorm:"serializer:json;type:json"`

	OnboardingStep int            `json:"onboarding_step"`
	Status         ProviderStatus `json:"status"`
	SubmittedAt    *time.Time     `json:"submitted_at,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedBy     *int64         `json:"reviewed_by,omitempty"`
	RejectedReason string         `json:"rejected_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
