package auth

import (
	"wellnessbook/internal/domain"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type registerProviderRequest struct {
	registerRequest
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty"`
	City        string `json:"city"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"role":       u.Role,
		"name":       u.Name,
		"phone":      u.Phone,
		"created_at": u.CreatedAt,
	}
}
