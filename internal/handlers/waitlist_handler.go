package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-platform/internal/httpresp"
	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

type WaitlistHandler struct {
	db *gorm.DB
}

func NewWaitlistHandler(db *gorm.DB) *WaitlistHandler {
	return &WaitlistHandler{db: db}
}

// GET /me/waitlist
func (h *WaitlistHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var entries []models.WaitlistEntry
	if err := q.
		Order("preferred_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_waitlist"})
		return
	}

	httpresp.List(c, entries)
}

// PATCH /me/waitlist/:id/notify
// Marca a entrada como avisada (o cliente foi chamado para um horário).
func (h *WaitlistHandler) Notify(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var entry models.WaitlistEntry
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", c.Param("id"), barbershopID).
		First(&entry).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "waitlist_entry_not_found"})
		return
	}

	entry.Status = "notified"
	if err := h.db.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_waitlist"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
