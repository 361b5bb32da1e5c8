package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medreminder/internal/service/reminder"
)

type ReminderHandler struct {
	projector *reminder.Projector
}

func NewReminderHandler(projector *reminder.Projector) *ReminderHandler {
	return &ReminderHandler{
		projector: projector,
	}
}

// Upcoming handles GET /reminders/upcoming
func (h *ReminderHandler) Upcoming(c *gin.Context) {
	upcoming, err := h.projector.Upcoming(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute upcoming reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": upcoming})
}
