package models

import "time"

// Data totalmente fechada para a barbearia. Precedência máxima:
// curto-circuita qualquer outra regra de horário.
type BlockedDate struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_shop_blocked_date" json:"barbershop_id"`

	Date   time.Time `gorm:"type:date;uniqueIndex:idx_shop_blocked_date" json:"date"`
	Reason string    `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
