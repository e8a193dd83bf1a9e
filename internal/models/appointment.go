package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `gorm:"index:idx_barber_slot" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberProductID uint          `json:"barber_product_id"`
	BarberProduct   BarberProduct `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber_product"`

	// snapshot do serviço no momento da reserva
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	StartTime time.Time `gorm:"index:idx_barber_slot" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// recorrência: ocorrências da mesma série compartilham SeriesID
	// e recebem índice sequencial 0..N-1
	SeriesID    *uuid.UUID `gorm:"type:uuid;index" json:"series_id,omitempty"`
	SeriesIndex *int       `json:"series_index,omitempty"`
	SeriesRule  string     `gorm:"size:255" json:"series_rule,omitempty"`

	// data original quando a ocorrência divergiu individualmente da série
	OriginalDate *time.Time `gorm:"type:date" json:"original_date,omitempty"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
