package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ======================================================
// ENUMS
// ======================================================

// Tipo de entidade rastreada pela auditoria (conjunto fechado)
type EntityType string

const (
	EntityQuote        EntityType = "quote"
	EntityInvoice      EntityType = "invoice"
	EntityReservation  EntityType = "reservation"
	EntityService      EntityType = "service"
	EntityWorkflow     EntityType = "workflow"
	EntityWorkflowStep EntityType = "workflow_step"
	EntityUser         EntityType = "user"
	EntityWorkshopTask EntityType = "workshop_task"
)

var entityTypes = map[EntityType]bool{
	EntityQuote:        true,
	EntityInvoice:      true,
	EntityReservation:  true,
	EntityService:      true,
	EntityWorkflow:     true,
	EntityWorkflowStep: true,
	EntityUser:         true,
	EntityWorkshopTask: true,
}

func (e EntityType) Valid() bool {
	return entityTypes[e]
}

func ParseEntityType(s string) (EntityType, bool) {
	e := EntityType(s)
	return e, e.Valid()
}

type AuditAction string

const (
	ActionCreated   AuditAction = "created"
	ActionUpdated   AuditAction = "updated"
	ActionDeleted   AuditAction = "deleted"
	ActionValidated AuditAction = "validated"
	ActionRejected  AuditAction = "rejected"
	ActionCompleted AuditAction = "completed"
	ActionCancelled AuditAction = "cancelled"
	ActionPaid      AuditAction = "paid"
	ActionConfirmed AuditAction = "confirmed"
)

var auditActions = map[AuditAction]bool{
	ActionCreated:   true,
	ActionUpdated:   true,
	ActionDeleted:   true,
	ActionValidated: true,
	ActionRejected:  true,
	ActionCompleted: true,
	ActionCancelled: true,
	ActionPaid:      true,
	ActionConfirmed: true,
}

func (a AuditAction) Valid() bool {
	return auditActions[a]
}

func ParseAuditAction(s string) (AuditAction, bool) {
	a := AuditAction(s)
	return a, a.Valid()
}

// ======================================================
// AUDIT LOG
// ======================================================

// Registro imutável de auditoria: escrito uma vez, nunca atualizado.
// EntityID não é FK de propósito — o log sobrevive à entidade.
type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EntityType EntityType  `gorm:"size:50;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   uint        `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action     AuditAction `gorm:"size:50;not null;index" json:"action"`

	// ActorID é o vínculo "vivo" com o usuário; ActorRole e ActorName
	// congelam quem era o ator no momento da ação.
	ActorID   *uint   `gorm:"index" json:"actor_id"`
	Actor     *User   `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL;" json:"actor,omitempty"`
	ActorRole *string `gorm:"size:20" json:"actor_role"`
	ActorName *string `gorm:"size:120" json:"actor_name"`

	Summary  string         `gorm:"size:255;not null" json:"summary"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	IPAddress *string `gorm:"size:45" json:"ip_address"`
	UserAgent *string `gorm:"size:255" json:"user_agent"`

	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`

	Changes []AuditLogChange `gorm:"foreignKey:AuditLogID;constraint:OnDelete:CASCADE" json:"changes"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.OccurredAt.IsZero() {
		l.OccurredAt = time.Now().UTC()
	}
	return nil
}

// Um campo alterado dentro de um AuditLog (null = campo ausente no snapshot)
type AuditLogChange struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuditLogID uuid.UUID `gorm:"type:uuid;not null;index" json:"audit_log_id"`

	Field         string         `gorm:"size:100;not null" json:"field"`
	PreviousValue datatypes.JSON `json:"previous_value"`
	NewValue      datatypes.JSON `json:"new_value"`
}

func (c *AuditLogChange) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
