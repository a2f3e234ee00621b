package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/givebridge/givebridge/internal/notify"
	"github.com/givebridge/givebridge/internal/repository"
)

// NotificationHandler serves the recipient's notification feed. Live
// delivery rides the Redis channel the queue consumer publishes to.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
	RDB           *redis.Client
}

func NewNotificationHandler(notifications *repository.NotificationRepo, rdb *redis.Client) *NotificationHandler {
	if notifications == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: notifications, RDB: rdb}
}

// List handles GET /v1/notifications. ?unread=true narrows to unread rows.
func (h *NotificationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	unreadOnly := c.QueryParam("unread") == "true"
	items, err := h.Notifications.ListByRecipient(c.Request().Context(), uid, unreadOnly, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Recent handles GET /v1/notifications/recent: the bell dropdown payload,
// latest ten plus the unread badge count.
func (h *NotificationHandler) Recent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	items, err := h.Notifications.ListByRecipient(ctx, uid, false, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	unread, err := h.Notifications.UnreadCount(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "unread_count": unread})
}

// MarkRead handles POST /v1/notifications/:id/read. Marking an already-read
// notification is a no-op success.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotificationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not yours"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all. A transient failure
// gets one retry before the client sees an error.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	updated, err := h.Notifications.MarkAllRead(ctx, uid)
	if err != nil {
		updated, err = h.Notifications.MarkAllRead(ctx, uid)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

// Stream handles GET /v1/notifications/stream: a server-sent-events feed of
// this user's notifications as the consumer writes them. Each event's data
// line is the stored notification JSON; a comment ping every 25s keeps
// proxies from closing the idle connection.
func (h *NotificationHandler) Stream(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.RDB == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "live feed unavailable"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	sub := h.RDB.Subscribe(ctx, notify.ChannelFor(uid))
	defer sub.Close()

	// Send the current unread count first so the client can paint the badge
	// before any event arrives.
	if unread, err := h.Notifications.UnreadCount(ctx, uid); err == nil {
		hello, _ := json.Marshal(echo.Map{"unread_count": unread})
		fmt.Fprintf(w, "event: hello\ndata: %s\n\n", hello)
		w.Flush()
	}

	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			w.Flush()
		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			w.Flush()
		}
	}
}
