package models

import "time"

// Registro de espera criado quando o dia preferido do cliente não tem
// nenhum horário livre.
type WaitlistEntry struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	BarberID        uint `json:"barber_id"`
	BarberProductID uint `json:"barber_product_id"`
	ClientID        uint `json:"client_id"`

	PreferredDate time.Time `gorm:"type:date" json:"preferred_date"`

	Status string `gorm:"size:20;default:'waiting'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
