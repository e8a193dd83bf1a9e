package models

import "time"

// Horário padrão da barbearia, por dia da semana.
type BusinessHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_shop_weekday" json:"barbershop_id"`

	Weekday int `gorm:"uniqueIndex:idx_shop_weekday" json:"weekday"`

	Active     bool   `json:"active"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
