package provider

import (
	"context"
	"testing"

	"wellnessbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *MockProviderRepository) Update(ctx context.Context, p *domain.ProviderProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepository) ListByStatus(ctx context.Context, status domain.ProviderStatus) ([]domain.ProviderProfile, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderProfile), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyOnboardingDecision(ctx context.Context, userID int64, p *domain.ProviderProfile) error {
	args := m.Called(ctx, userID, p)
	return args.Error(0)
}

func draftProfile(userID int64) *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ID:             1,
		UserID:         userID,
		Status:         domain.ProviderDraft,
		OnboardingStep: domain.OnboardingStepProfile,
	}
}

func TestUpdateProfile_AdvancesToCredentialsStep(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)
	repo.On("Update", mock.Anything, p).Return(nil)

	out, err := service.UpdateProfile(context.Background(), 7, ProfileInput{
		DisplayName: "Calm Waters Spa",
		Specialty:   "massage",
		City:        "Denver",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Calm Waters Spa", out.DisplayName)
	assert.Equal(t, domain.OnboardingStepCredentials, out.OnboardingStep)
	assert.Equal(t, domain.ProviderDraft, out.Status, "editing does not submit")
}

func TestUpdateProfile_BlankDisplayName(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, int64(7)).Return(draftProfile(7), nil)

	_, err := service.UpdateProfile(context.Background(), 7, ProfileInput{DisplayName: "  "})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateProfile_ClosedAfterSubmission(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	p.Status = domain.ProviderPending
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)

	_, err := service.UpdateProfile(context.Background(), 7, ProfileInput{DisplayName: "New Name"})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestAddCredentials_RequiresProfileStep(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, int64(7)).Return(draftProfile(7), nil)

	_, err := service.AddCredentials(context.Background(), 7, []string{"doc://license.pdf"})

	assert.ErrorIs(t, err, ErrWrongStep)
	repo.AssertNotCalled(t, "Update")
}

func TestAddCredentials_AdvancesToReviewStep(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	p.OnboardingStep = domain.OnboardingStepCredentials
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)
	repo.On("Update", mock.Anything, p).Return(nil)

	out, err := service.AddCredentials(context.Background(), 7, []string{" doc://license.pdf ", ""})

	assert.NoError(t, err)
	assert.Equal(t, []string{"doc://license.pdf"}, out.CredentialDocs, "blank entries are dropped")
	assert.Equal(t, domain.OnboardingStepReview, out.OnboardingStep)
}

func TestSubmit_RequiresCredentials(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	p.OnboardingStep = domain.OnboardingStepCredentials
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)

	_, err := service.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmit_MovesToPending(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	p.OnboardingStep = domain.OnboardingStepReview
	p.CredentialDocs = []string{"doc://license.pdf"}
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)
	repo.On("Update", mock.Anything, p).Return(nil)

	out, err := service.Submit(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderPending, out.Status)
	assert.NotNil(t, out.SubmittedAt)
}

func TestSubmit_Twice(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	p := draftProfile(7)
	p.Status = domain.ProviderPending
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)

	_, err := service.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestApprove(t *testing.T) {
	repo := new(MockProviderRepository)
	notifs := new(MockNotificationSender)
	service := NewService(repo, notifs)

	p := draftProfile(7)
	p.Status = domain.ProviderPending
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)
	repo.On("Update", mock.Anything, p).Return(nil)
	notifs.On("NotifyOnboardingDecision", mock.Anything, int64(7), p).Return(nil)

	out, err := service.Approve(context.Background(), 99, 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderApproved, out.Status)
	if assert.NotNil(t, out.ReviewedBy) {
		assert.Equal(t, int64(99), *out.ReviewedBy)
	}
	assert.NotNil(t, out.ReviewedAt)
	notifs.AssertExpectations(t)
}

func TestApprove_NotPending(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, int64(7)).Return(draftProfile(7), nil)

	_, err := service.Approve(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestReject_RequiresReason(t *testing.T) {
	service := NewService(new(MockProviderRepository), nil)

	_, err := service.Reject(context.Background(), 99, 7, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReject_ReturnsProfileToProvider(t *testing.T) {
	repo := new(MockProviderRepository)
	notifs := new(MockNotificationSender)
	service := NewService(repo, notifs)

	p := draftProfile(7)
	p.Status = domain.ProviderPending
	repo.On("GetByUserID", mock.Anything, int64(7)).Return(p, nil)
	repo.On("Update", mock.Anything, p).Return(nil)
	notifs.On("NotifyOnboardingDecision", mock.Anything, int64(7), p).Return(nil)

	out, err := service.Reject(context.Background(), 99, 7, "license expired")

	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderRejected, out.Status)
	assert.Equal(t, "license expired", out.RejectedReason)
}

func TestGetMyProfile_NotFound(t *testing.T) {
	repo := new(MockProviderRepository)
	service := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetMyProfile(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
