package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

// WorkingHoursHandler administra a agenda semanal individual do barbeiro.
// Quando existe para um dia, ela substitui por completo o horário da casa
// naquele dia; por isso o PUT é sempre a semana inteira, nunca um merge.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// GET /me/schedule/working-hours?barber_id=
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := barberIDOrSelf(c)

	var rows []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_working_hours"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// PUT /me/schedule/working-hours?barber_id=
func (h *WorkingHoursHandler) Put(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := barberIDOrSelf(c)

	var req []DayHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	seen := map[int]bool{}
	for _, d := range req {
		if d.Weekday < 0 || d.Weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
			return
		}
		if seen[d.Weekday] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicated_weekday"})
			return
		}
		seen[d.Weekday] = true

		if code := validateDayHours(d.Active, d.StartTime, d.EndTime, d.LunchStart, d.LunchEnd); code != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": code, "weekday": d.Weekday})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, d := range req {
			row := models.WorkingHours{
				BarberID:   barberID,
				Weekday:    d.Weekday,
				Active:     d.Active,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				LunchStart: d.LunchStart,
				LunchEnd:   d.LunchEnd,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	writeAudit(h.db, barbershopID, nil, "working_hours_updated", "working_hours", &barberID, req)

	h.Get(c)
}
