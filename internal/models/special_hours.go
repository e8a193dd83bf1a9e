package models

import "time"

// Horário excepcional para uma data específica (feriados, véspera etc).
// Tem precedência sobre BusinessHours naquele dia.
type SpecialHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_shop_special_date" json:"barbershop_id"`

	Date time.Time `gorm:"type:date;uniqueIndex:idx_shop_special_date" json:"date"`

	Closed     bool   `json:"closed"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	Reason string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
