package models

import "time"

type Quote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Valor em formato decimal ("150.00") para não perder centavos
	QuoteAmount string     `gorm:"type:numeric(10,2)" json:"quote_amount"`
	Status      string     `gorm:"size:20;default:'pending'" json:"status"`
	Description string     `gorm:"size:255" json:"description"`
	ValidUntil  *time.Time `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
