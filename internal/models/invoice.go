package models

import "time"

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Fatura pode nascer de um orçamento aprovado
	QuoteID *uint `json:"quote_id"`

	Amount  string     `gorm:"type:numeric(10,2)" json:"amount"`
	Status  string     `gorm:"size:20;default:'draft'" json:"status"`
	DueDate *time.Time `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
