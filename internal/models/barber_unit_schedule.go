package models

import "time"

// Para barbeiros que atendem em mais de uma unidade: em qual barbearia a
// pessoa trabalha em cada dia da semana, com o horário daquele dia.
// Exatamente uma unidade por dia da semana.
type BarberUnitSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_unit_weekday" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_barber_unit_weekday" json:"weekday"`

	BarbershopID uint `json:"barbershop_id"`

	Active     bool   `json:"active"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
