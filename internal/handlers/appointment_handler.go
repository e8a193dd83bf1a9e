package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-platform/internal/httpresp"
	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	ucappointment "github.com/BruksfildServices01/booking-platform/internal/usecase/appointment"
)

// AppointmentHandler é a casca HTTP da agenda: converte requisição em
// input, delega ao caso de uso e traduz o resultado. Nenhuma regra de
// negócio vive aqui.
type AppointmentHandler struct {
	db *gorm.DB

	create     *ucappointment.CreateAppointment
	reschedule *ucappointment.RescheduleAppointment
	cancel     *ucappointment.CancelAppointment
	confirm    *ucappointment.ConfirmAppointment
	complete   *ucappointment.CompleteAppointment
	noShow     *ucappointment.MarkNoShow

	listByDate  *ucappointment.ListAppointmentsByDate
	listByMonth *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *ucappointment.CreateAppointment,
	reschedule *ucappointment.RescheduleAppointment,
	cancel *ucappointment.CancelAppointment,
	confirm *ucappointment.ConfirmAppointment,
	complete *ucappointment.CompleteAppointment,
	noShow *ucappointment.MarkNoShow,
	listByDate *ucappointment.ListAppointmentsByDate,
	listByMonth *ucappointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:          db,
		create:      create,
		reschedule:  reschedule,
		cancel:      cancel,
		confirm:     confirm,
		complete:    complete,
		noShow:      noShow,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// --------- Handlers ---------

// POST /me/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     req.BarberID,
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ByStaff:      true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// PATCH /me/appointments/:id/reschedule
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucappointment.RescheduleAppointmentInput{
		BarbershopID:  barbershopID,
		BarberID:      barberIDOrSelf(c),
		AppointmentID: uint(id),
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// PATCH /me/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

// PATCH /me/appointments/:id/confirm
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, id uint) (*models.Appointment, error) {
		return h.confirm.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

// PATCH /me/appointments/:id/complete
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

// PATCH /me/appointments/:id/no-show
func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(barbershopID, barberID, id uint) (*models.Appointment, error) {
		return h.noShow.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

// GET /me/appointments?date=2006-01-02  ou  ?year=&month=
func (h *AppointmentHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := barberIDOrSelf(c)

	if dateStr := c.Query("date"); dateStr != "" {
		var shop models.Barbershop
		if err := h.db.First(&shop, barbershopID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "barbershop_not_found"})
			return
		}

		date, err := parseDateInShop(&shop, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}

		list, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
		if err != nil {
			respondError(c, err)
			return
		}

		httpresp.List(c, list)
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, list)
}

// --------- Internos ---------

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(barbershopID, barberID, id uint) (*models.Appointment, error),
) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	ap, err := run(barbershopID, barberIDOrSelf(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
