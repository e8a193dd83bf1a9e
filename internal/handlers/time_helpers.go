package handlers

import (
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

// Datas chegam como string "2006-01-02" e precisam virar meia-noite no
// fuso DA BARBEARIA: interpretar em UTC desloca o dia em fusos negativos.

func locationFromShop(shop *models.Barbershop) *time.Location {
	if shop == nil {
		return timezone.Location(timezone.DefaultTimezone)
	}
	return timezone.Location(shop.Timezone)
}

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}
