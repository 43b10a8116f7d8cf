package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/punchcard-app/punchcard/internal/domain"
	"github.com/punchcard-app/punchcard/internal/service"
)

// MealHandler handles receipt submission and confirmation endpoints.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

type submitMealRequest struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	Confident bool  `json:"confident"`
}

// Submit handles POST /meals.
func (h *MealHandler) Submit(c echo.Context) error {
	var req submitMealRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.meals.Submit(c.Request().Context(), req.UserID, req.Confident)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, result)
}

// Confirm handles POST /meals/:id/confirm.
func (h *MealHandler) Confirm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.meals.Confirm(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, result)
}

// Reject handles POST /meals/:id/reject.
func (h *MealHandler) Reject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	meal, err := h.meals.Reject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, meal)
}

// ListByUser handles GET /users/:id/meals.
func (h *MealHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	meals, err := h.meals.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, meals)
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s parameter", domain.ErrInvalidInput, name)
	}
	return id, nil
}
