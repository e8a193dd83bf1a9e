package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/middleware"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	ucappointment "github.com/BruksfildServices01/booking-platform/internal/usecase/appointment"
)

// AvailabilityHandler expõe o cálculo de horários livres: o dia unitário
// (lista de slots) e o mês inteiro (calendário por dia).
type AvailabilityHandler struct {
	db    *gorm.DB
	day   *ucappointment.GetAvailability
	month *ucappointment.GetMonthAvailability
}

func NewAvailabilityHandler(
	db *gorm.DB,
	day *ucappointment.GetAvailability,
	month *ucappointment.GetMonthAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, day: day, month: month}
}

// GET /me/availability?barber_id=&product_id=&date=2006-01-02
func (h *AvailabilityHandler) GetDay(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID, err1 := strconv.Atoi(c.Query("barber_id"))
	productID, err2 := strconv.Atoi(c.Query("product_id"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barbershop_not_found"})
		return
	}

	date, err := parseDateInShop(&shop, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	result, err := h.day.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: barbershopID,
		BarberID:     uint(barberID),
		ProductID:    uint(productID),
		Date:         date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /me/availability/month?barber_id=&product_id=&year=&month=
func (h *AvailabilityHandler) GetMonth(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID, err1 := strconv.Atoi(c.Query("barber_id"))
	productID, err2 := strconv.Atoi(c.Query("product_id"))
	year, err3 := strconv.Atoi(c.Query("year"))
	month, err4 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil ||
		month < 1 || month > 12 {

		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	days, err := h.month.Execute(c.Request.Context(), ucappointment.MonthAvailabilityInput{
		BarbershopID: barbershopID,
		BarberID:     uint(barberID),
		ProductID:    uint(productID),
		Year:         year,
		Month:        month,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
