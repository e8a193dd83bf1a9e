package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

// ScheduleConfigHandler administra as camadas de configuração de horário
// da barbearia: padrão semanal, datas especiais, datas bloqueadas e a
// grade multi-unidade dos barbeiros.
type ScheduleConfigHandler struct {
	db *gorm.DB
}

func NewScheduleConfigHandler(db *gorm.DB) *ScheduleConfigHandler {
	return &ScheduleConfigHandler{db: db}
}

// --------- Requests ---------

type DayHoursRequest struct {
	Weekday    int    `json:"weekday"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type SpecialHoursRequest struct {
	Date       string `json:"date" binding:"required"`
	Closed     bool   `json:"closed"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Reason     string `json:"reason"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

type UnitScheduleRequest struct {
	BarberID uint             `json:"barber_id" binding:"required"`
	Days     []UnitDayRequest `json:"days" binding:"required"`
}

type UnitDayRequest struct {
	Weekday      int    `json:"weekday"`
	BarbershopID uint   `json:"barbershop_id"`
	Active       bool   `json:"active"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	LunchStart   string `json:"lunch_start"`
	LunchEnd     string `json:"lunch_end"`
}

// validateDayHours garante expediente bem formado: início antes do fim e
// almoço (quando informado) inteiro dentro da janela.
func validateDayHours(active bool, start, end, lunchStart, lunchEnd string) string {
	if !active {
		return ""
	}

	s, errS := time.Parse("15:04", start)
	e, errE := time.Parse("15:04", end)
	if errS != nil || errE != nil || !s.Before(e) {
		return "invalid_window"
	}

	if lunchStart == "" && lunchEnd == "" {
		return ""
	}

	ls, errLS := time.Parse("15:04", lunchStart)
	le, errLE := time.Parse("15:04", lunchEnd)
	if errLS != nil || errLE != nil || !ls.Before(le) {
		return "invalid_lunch"
	}
	if ls.Before(s) || le.After(e) {
		return "lunch_outside_window"
	}

	return ""
}

// ======================================================
// BUSINESS HOURS (padrão semanal da casa)
// ======================================================

// GET /me/schedule/business-hours
func (h *ScheduleConfigHandler) GetBusinessHours(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var hours []models.BusinessHours
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_business_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// PUT /me/schedule/business-hours
// Substituição completa da semana: os sete dias chegam juntos.
func (h *ScheduleConfigHandler) PutBusinessHours(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req []DayHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	for _, d := range req {
		if d.Weekday < 0 || d.Weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
			return
		}
		if code := validateDayHours(d.Active, d.StartTime, d.EndTime, d.LunchStart, d.LunchEnd); code != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": code, "weekday": d.Weekday})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ?", barbershopID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		for _, d := range req {
			row := models.BusinessHours{
				BarbershopID: barbershopID,
				Weekday:      d.Weekday,
				Active:       d.Active,
				StartTime:    d.StartTime,
				EndTime:      d.EndTime,
				LunchStart:   d.LunchStart,
				LunchEnd:     d.LunchEnd,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
		return
	}

	writeAudit(h.db, barbershopID, nil, "business_hours_updated", "business_hours", nil, req)

	h.GetBusinessHours(c)
}

// ======================================================
// SPECIAL HOURS (exceções por data)
// ======================================================

// GET /me/schedule/special-hours
func (h *ScheduleConfigHandler) ListSpecialHours(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var rows []models.SpecialHours
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("date ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_special_hours"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// PUT /me/schedule/special-hours
// Upsert por (barbearia, data).
func (h *ScheduleConfigHandler) PutSpecialHours(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req SpecialHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	if !req.Closed {
		if code := validateDayHours(true, req.StartTime, req.EndTime, req.LunchStart, req.LunchEnd); code != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": code})
			return
		}
	}

	row := models.SpecialHours{
		BarbershopID: barbershopID,
		Date:         date,
		Closed:       req.Closed,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		LunchStart:   req.LunchStart,
		LunchEnd:     req.LunchEnd,
		Reason:       req.Reason,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barbershop_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"closed", "start_time", "end_time", "lunch_start", "lunch_end", "reason", "updated_at",
		}),
	}).Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_special_hours"})
		return
	}

	writeAudit(h.db, barbershopID, nil, "special_hours_updated", "special_hours", &row.ID, req)

	c.JSON(http.StatusOK, row)
}

// DELETE /me/schedule/special-hours/:id
func (h *ScheduleConfigHandler) DeleteSpecialHours(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	res := h.db.
		Where("id = ? AND barbershop_id = ?", c.Param("id"), barbershopID).
		Delete(&models.SpecialHours{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_special_hours"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "special_hours_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// BLOCKED DATES
// ======================================================

// GET /me/schedule/blocked-dates
func (h *ScheduleConfigHandler) ListBlockedDates(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var rows []models.BlockedDate
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("date ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocked_dates"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// POST /me/schedule/blocked-dates
func (h *ScheduleConfigHandler) CreateBlockedDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	row := models.BlockedDate{
		BarbershopID: barbershopID,
		Date:         date,
		Reason:       req.Reason,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_block_date"})
		return
	}

	writeAudit(h.db, barbershopID, nil, "date_blocked", "blocked_date", &row.ID, req)

	c.JSON(http.StatusCreated, row)
}

// DELETE /me/schedule/blocked-dates/:id
func (h *ScheduleConfigHandler) DeleteBlockedDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	res := h.db.
		Where("id = ? AND barbershop_id = ?", c.Param("id"), barbershopID).
		Delete(&models.BlockedDate{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_unblock_date"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "blocked_date_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// BARBER UNIT SCHEDULE (multi-unidade)
// ======================================================

// GET /me/schedule/unit-schedules?barber_id=
func (h *ScheduleConfigHandler) GetUnitSchedule(c *gin.Context) {
	barberID := barberIDOrSelf(c)

	var rows []models.BarberUnitSchedule
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_unit_schedule"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// PUT /me/schedule/unit-schedules
// Substituição completa: um registro por dia da semana, cada dia aponta
// para exatamente uma unidade.
func (h *ScheduleConfigHandler) PutUnitSchedule(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req UnitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
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
			Where("barber_id = ?", req.BarberID).
			Delete(&models.BarberUnitSchedule{}).Error; err != nil {
			return err
		}

		for _, d := range req.Days {
			unitID := d.BarbershopID
			if unitID == 0 {
				unitID = barbershopID
			}
			row := models.BarberUnitSchedule{
				BarberID:     req.BarberID,
				Weekday:      d.Weekday,
				BarbershopID: unitID,
				Active:       d.Active,
				StartTime:    d.StartTime,
				EndTime:      d.EndTime,
				LunchStart:   d.LunchStart,
				LunchEnd:     d.LunchEnd,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_unit_schedule"})
		return
	}

	writeAudit(h.db, barbershopID, nil, "unit_schedule_updated", "barber_unit_schedule", &req.BarberID, req)

	c.JSON(http.StatusOK, gin.H{"saved": len(req.Days)})
}
