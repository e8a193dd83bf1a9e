package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint
	Date         time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailability é a linha do calendário mensal: status de exibição mais
// a contagem (livres, total) de horários do dia.
type DayAvailability struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	Available int    `json:"available"`
	Total     int    `json:"total"`
}
