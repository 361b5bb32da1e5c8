package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medreminder/internal/model"
	"medreminder/internal/repository"
)

// NotificationStore is the notification surface the handler reads and
// updates.
type NotificationStore interface {
	ListByUser(ctx context.Context, userID, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}

type NotificationHandler struct {
	notificationRepo NotificationStore
}

func NewNotificationHandler(notificationRepo NotificationStore) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationRepo.ListByUser(c.Request.Context(), c.GetInt("user_id"), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notificationRepo.MarkRead(c.Request.Context(), id, c.GetInt("user_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
