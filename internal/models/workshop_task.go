package models

import "time"

// Tarefa interna da oficina (quadro de tarefas)
type WorkshopTask struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Status      string `gorm:"size:20;default:'open'" json:"status"`

	AssignedToID *uint `json:"assigned_to_id"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL;" json:"assigned_to,omitempty"`

	ReservationID *uint      `json:"reservation_id"`
	DueDate       *time.Time `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
