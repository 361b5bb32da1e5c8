package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medreminder/internal/service/medicine"
)

type StatsHandler struct {
	statsService *medicine.StatsService
}

func NewStatsHandler(statsService *medicine.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Stats handles GET /stats
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Stats(c.Request.Context(), c.GetInt("user_id"), c.GetString("role"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
