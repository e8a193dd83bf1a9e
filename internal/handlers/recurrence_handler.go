package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	ucrecurrence "github.com/BruksfildServices01/booking-platform/internal/usecase/recurrence"
)

// RecurrenceHandler cobre o ciclo da série recorrente: prévia, criação e
// edições com escopo (single / future / all).
type RecurrenceHandler struct {
	preview *ucrecurrence.PreviewSeries
	create  *ucrecurrence.CreateSeries
	update  *ucrecurrence.UpdateSeries
	cancel  *ucrecurrence.CancelSeries
}

func NewRecurrenceHandler(
	preview *ucrecurrence.PreviewSeries,
	create *ucrecurrence.CreateSeries,
	update *ucrecurrence.UpdateSeries,
	cancel *ucrecurrence.CancelSeries,
) *RecurrenceHandler {
	return &RecurrenceHandler{
		preview: preview,
		create:  create,
		update:  update,
		cancel:  cancel,
	}
}

// --------- Requests ---------

type SeriesRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	StartDate string `json:"start_date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`

	IntervalWeeks int    `json:"interval_weeks"`
	Count         int    `json:"count"`
	Until         string `json:"until"` // "2006-01-02", alternativa a count
}

type UpdateSeriesRequest struct {
	Scope        string `json:"scope" binding:"required"`
	NewDate      string `json:"new_date" binding:"required"`
	NewTime      string `json:"new_time"`
	NewProductID uint   `json:"new_product_id"`
}

type CancelSeriesRequest struct {
	Scope string `json:"scope" binding:"required"`
}

func (r SeriesRequest) toInput(barbershopID uint) ucrecurrence.SeriesInput {
	rule := schedule.RecurrenceRule{
		IntervalWeeks: r.IntervalWeeks,
		Count:         r.Count,
		Until:         r.Until,
	}

	return ucrecurrence.SeriesInput{
		BarbershopID: barbershopID,
		BarberID:     r.BarberID,
		ProductID:    r.ProductID,
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
		StartDate:    r.StartDate,
		Time:         r.Time,
		Rule:         rule,
		Notes:        r.Notes,
	}
}

// --------- Handlers ---------

// POST /me/appointments/series/preview
func (h *RecurrenceHandler) Preview(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	checks, err := h.preview.Execute(c.Request.Context(), req.toInput(barbershopID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrences": checks})
}

// POST /me/appointments/series
func (h *RecurrenceHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.create.Execute(c.Request.Context(), req.toInput(barbershopID))
	if err != nil {
		respondError(c, err)
		return
	}

	// série recusada inteira: devolve a lista de conflitos, nada gravado
	if len(result.Conflicts) > 0 {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// PATCH /me/appointments/series/:id
func (h *RecurrenceHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	scope, err := domain.ParseScope(req.Scope)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.update.Execute(c.Request.Context(), ucrecurrence.UpdateSeriesInput{
		BarbershopID:  barbershopID,
		BarberID:      barberIDOrSelf(c),
		AppointmentID: uint(id),
		Scope:         scope,
		NewDate:       req.NewDate,
		NewTime:       req.NewTime,
		NewProductID:  req.NewProductID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PATCH /me/appointments/series/:id/cancel
func (h *RecurrenceHandler) Cancel(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var req CancelSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	scope, err := domain.ParseScope(req.Scope)
	if err != nil {
		respondError(c, err)
		return
	}

	cancelled, err := h.cancel.Execute(c.Request.Context(), ucrecurrence.CancelSeriesInput{
		BarbershopID:  barbershopID,
		BarberID:      barberIDOrSelf(c),
		AppointmentID: uint(id),
		Scope:         scope,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": len(cancelled)})
}

// barber_id na query permite o dono operar a agenda de outro barbeiro da
// casa; sem ele, vale o próprio usuário logado.
func barberIDOrSelf(c *gin.Context) uint {
	if raw := c.Query("barber_id"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return uint(v)
		}
	}
	return c.MustGet(middleware.ContextUserID).(uint)
}
