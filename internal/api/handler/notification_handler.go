package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/core/notify"
)

// NotificationHandler exposes the live, auto-expiring notices.
type NotificationHandler struct {
	center *notify.Center
}

func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List returns the notifications that have not yet expired, oldest first.
func (h *NotificationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.center.Active())
}
