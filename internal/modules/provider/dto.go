package provider

import (
	"wellnessbook/internal/domain"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Specialty   string `json:"specialty"`
	Bio         string `json:"bio"`
	City        string `json:"city"`
}

type credentialsRequest struct {
	Documents []string `json:"documents" binding:"required,min=1"`
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func profileView(p *domain.ProviderProfile) gin.H {
	return gin.H{
		"id":              p.ID,
		"user_id":         p.UserID,
		"display_name":    p.DisplayName,
		"specialty":       p.Specialty,
		"bio":             p.Bio,
		"city":            p.City,
		"credential_docs": p.CredentialDocs,
		"onboarding_step": p.OnboardingStep,
		"status":          p.Status,
		"submitted_at":    p.SubmittedAt,
		"reviewed_at":     p.ReviewedAt,
		"rejected_reason": p.RejectedReason,
	}
}

// publicProfileView hides review internals from the public directory.
func publicProfileView(p *domain.ProviderProfile) gin.H {
	return gin.H{
		"user_id":      p.UserID,
		"display_name": p.DisplayName,
		"specialty":    p.Specialty,
		"bio":          p.Bio,
		"city":         p.City,
	}
}

func profileViews(list []domain.ProviderProfile, public bool) []gin.H {
	out := make([]gin.H, 0, len(list))
	for i := range list {
		if public {
			out = append(out, publicProfileView(&list[i]))
		} else {
			out = append(out, profileView(&list[i]))
		}
	}
	return out
}
