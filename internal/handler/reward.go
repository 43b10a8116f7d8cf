package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/punchcard-app/punchcard/internal/service"
)

// RewardHandler handles reward listing and redemption endpoints.
type RewardHandler struct {
	rewards *service.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewards *service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// ListByUser handles GET /users/:id/rewards.
func (h *RewardHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	rewards, err := h.rewards.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, rewards)
}

// Redeem handles POST /rewards/:id/redeem.
func (h *RewardHandler) Redeem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reward, err := h.rewards.Redeem(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, reward)
}
