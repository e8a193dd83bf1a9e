package dto

import (
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/models"
)

type AppointmentListDTO struct {
	ID          uint       `json:"id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Status      string     `json:"status"`
	ClientName  string     `json:"client_name"`
	ProductName string     `json:"product_name"`
	SeriesID    *string    `json:"series_id,omitempty"`
	SeriesIndex *int       `json:"series_index,omitempty"`
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ProductName: ap.BarberProduct.Name,
			SeriesIndex: ap.SeriesIndex,
		}
		if ap.SeriesID != nil {
			s := ap.SeriesID.String()
			item.SeriesID = &s
		}
		out = append(out, item)
	}
	return out
}
