package models

import "time"

// Fluxo de reparo de uma reserva, executado passo a passo
type Workflow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint   `gorm:"not null" json:"reservation_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Status        string `gorm:"size:20;default:'active'" json:"status"`

	Steps []WorkflowStep `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE" json:"steps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkflowStep struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkflowID uint   `gorm:"not null;index" json:"workflow_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Position   int    `gorm:"not null" json:"position"`
	Status     string `gorm:"size:20;default:'pending'" json:"status"`

	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
