package models

import "time"

// Agenda individual do barbeiro, por dia da semana. Quando existe para um
// dia, SUBSTITUI por completo o horário da barbearia naquele dia (não é
// interseção): representa quando aquela pessoa de fato trabalha. Sem
// registro, vale o horário padrão da casa.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_barber_weekday" json:"weekday"`

	Active     bool   `json:"active"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
