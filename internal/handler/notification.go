package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/punchcard-app/punchcard/internal/service"
)

// NotificationHandler handles in-app notification endpoints.
type NotificationHandler struct {
	notes *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notes *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

// ListByUser handles GET /users/:id/notifications.
func (h *NotificationHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	notifications, err := h.notes.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notes.MarkRead(c.Request().Context(), id); err != nil {
		return err
	}
	return JSON(c, http.StatusOK, map[string]bool{"read": true})
}
