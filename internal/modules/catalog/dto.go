package catalog

import (
	"wellnessbook/internal/domain"

	"github.com/gin-gonic/gin"
)

type createOfferingRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
}

type updateOfferingRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	Active          *bool    `json:"active"`
}

func offeringView(o *domain.ServiceOffering) gin.H {
	return gin.H{
		"id":               o.ID,
		"provider_id":      o.ProviderID,
		"name":             o.Name,
		"category":         o.Category,
		"description":      o.Description,
		"duration_minutes": o.DurationMinutes,
		"price":            o.Price,
		"active":           o.Active,
		"created_at":       o.CreatedAt,
		"updated_at":       o.UpdatedAt,
	}
}

func offeringViews(list []domain.ServiceOffering) []gin.H {
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, offeringView(&list[i]))
	}
	return out
}
