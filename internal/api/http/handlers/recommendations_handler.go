package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/service"
)

// RecommendationsHandler serves similarity-ranked product suggestions.
type RecommendationsHandler struct {
	recommendations *service.RecommendationService
}

func NewRecommendationsHandler(recommendations *service.RecommendationService) *RecommendationsHandler {
	return &RecommendationsHandler{recommendations: recommendations}
}

// Recommend handles POST /api/recommendations.
func (h *RecommendationsHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	userID := req.UserID
	if session := mustSession(c); session != nil {
		userID = session.UserID
	}

	recs, err := h.recommendations.Recommend(c.UserContext(), service.RecommendationInput{
		Preferences: req.UserPreferences,
		CartItems:   req.CartItems,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(recs)
}
