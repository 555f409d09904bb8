package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// NotificationHandler handles HTTP requests for the notification inbox
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user := currentUser(c)
	page, limit := pageParams(c)

	notifications, total, err := h.notificationRepository.GetByRecipientID(c.Request().Context(), user.FirebaseUID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"meta": echo.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user := currentUser(c)

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), user.FirebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

// MarkAsRead flips the read flag on one notification. Scoped to the caller:
// another user's notification id reads as not found.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user := currentUser(c)

	err := h.notificationRepository.MarkAsRead(c.Request().Context(), c.Param("id"), user.FirebaseUID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead flips the read flag on every unread notification of the caller
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user := currentUser(c)

	if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.FirebaseUID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
