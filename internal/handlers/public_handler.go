package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	ucappointment "github.com/BruksfildServices01/booking-platform/internal/usecase/appointment"
)

// PublicHandler é a superfície sem autenticação, endereçada pelo slug da
// barbearia. Reserva pública nasce pendente e respeita a antecedência
// mínima; o resto do fluxo é o mesmo do painel.
type PublicHandler struct {
	db *gorm.DB

	day      *ucappointment.GetAvailability
	month    *ucappointment.GetMonthAvailability
	create   *ucappointment.CreateAppointment
	waitlist *ucappointment.JoinWaitlist
}

func NewPublicHandler(
	db *gorm.DB,
	day *ucappointment.GetAvailability,
	month *ucappointment.GetMonthAvailability,
	create *ucappointment.CreateAppointment,
	waitlist *ucappointment.JoinWaitlist,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		day:      day,
		month:    month,
		create:   create,
		waitlist: waitlist,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barbershop_not_found"})
		return nil, false
	}
	return &shop, true
}

// GET /public/:slug
func (h *PublicHandler) GetShop(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       shop.ID,
		"name":     shop.Name,
		"slug":     shop.Slug,
		"phone":    shop.Phone,
		"address":  shop.Address,
		"timezone": shop.Timezone,
	})
}

// GET /public/:slug/products
func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var products []models.BarberProduct
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("id ASC").
		Find(&products).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /public/:slug/barbers
func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ?", shop.ID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	out := make([]gin.H, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, gin.H{"id": b.ID, "name": b.Name})
	}

	c.JSON(http.StatusOK, out)
}

// GET /public/:slug/availability?barber_id=&product_id=&date=
func (h *PublicHandler) GetDayAvailability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barberID, err1 := strconv.Atoi(c.Query("barber_id"))
	productID, err2 := strconv.Atoi(c.Query("product_id"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	date, err := parseDateInShop(shop, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	result, err := h.day.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: shop.ID,
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

// GET /public/:slug/availability/month?barber_id=&product_id=&year=&month=
func (h *PublicHandler) GetMonthAvailability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

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
		BarbershopID: shop.ID,
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

// --------- Reserva pública ---------

type PublicBookingRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

// POST /public/:slug/appointments
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ByStaff:      false,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}

// --------- Lista de espera ---------

type PublicWaitlistRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date string `json:"date" binding:"required"`
}

// POST /public/:slug/waitlist
func (h *PublicHandler) JoinWaitlist(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.waitlist.Execute(c.Request.Context(), ucappointment.JoinWaitlistInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ProductID:    req.ProductID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Date:         req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             entry.ID,
		"status":         entry.Status,
		"preferred_date": entry.PreferredDate,
	})
}
