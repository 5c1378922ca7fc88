package dto

import "github.com/devfolio/portfolio-api/internal/service"

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	UserPreferences string                `json:"userPreferences"`
	CartItems       []service.CartItemRef `json:"cartItems"`
	UserID          string                `json:"userId"`
}
