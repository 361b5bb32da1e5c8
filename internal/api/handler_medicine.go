package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medreminder/internal/model"
	"medreminder/internal/repository"
	"medreminder/internal/service/medicine"
)

type MedicineHandler struct {
	medicineService *medicine.Service
}

func NewMedicineHandler(medicineService *medicine.Service) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
	}
}

// Add handles POST /medicines
func (h *MedicineHandler) Add(c *gin.Context) {
	var req struct {
		MedicineName  string   `json:"medicine_name" binding:"required"`
		Dosage        string   `json:"dosage" binding:"required"`
		Frequency     string   `json:"frequency"`
		ScheduleType  string   `json:"schedule_type"`
		TimesPerDay   int      `json:"times_per_day"`
		SpecificTimes []string `json:"specific_times"`
		StartDate     string   `json:"start_date" binding:"required"`
		EndDate       string   `json:"end_date"`
		Instructions  string   `json:"instructions"`
		Priority      string   `json:"priority"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m := &model.Medicine{
		UserID:        c.GetInt("user_id"),
		Name:          req.MedicineName,
		Dosage:        req.Dosage,
		Frequency:     req.Frequency,
		ScheduleType:  req.ScheduleType,
		TimesPerDay:   req.TimesPerDay,
		SpecificTimes: req.SpecificTimes,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Instructions:  req.Instructions,
		Priority:      req.Priority,
	}

	if err := h.medicineService.Add(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add medicine"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": m.ID})
}

// List handles GET /medicines
func (h *MedicineHandler) List(c *gin.Context) {
	medicines, err := h.medicineService.ListForUser(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list medicines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

// Deactivate handles POST /medicines/:id/deactivate
func (h *MedicineHandler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	if err := h.medicineService.Deactivate(c.Request.Context(), id, c.GetInt("user_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate medicine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// Delete handles DELETE /medicines/:id
func (h *MedicineHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	if err := h.medicineService.Delete(c.Request.Context(), id, c.GetInt("user_id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete medicine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// LogIntake handles POST /medicines/:id/logs
func (h *MedicineHandler) LogIntake(c *gin.Context) {
	medicineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	var req struct {
		ScheduledTime string `json:"scheduled_time" binding:"required"`
		Status        string `json:"status"`
		Notes         string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	l := &model.MedicineLog{
		UserID:        c.GetInt("user_id"),
		MedicineID:    medicineID,
		ScheduledTime: req.ScheduledTime,
		Status:        req.Status,
		Notes:         req.Notes,
	}

	if err := h.medicineService.LogIntake(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log medicine"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": l.ID})
}

// History handles GET /logs
func (h *MedicineHandler) History(c *gin.Context) {
	history, err := h.medicineService.History(c.Request.Context(), c.GetInt("user_id"), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
