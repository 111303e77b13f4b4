package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// ======================================================
// ENTRY
// ======================================================

type Entry struct {
	EntityType models.EntityType
	EntityID   uint
	Action     models.AuditAction

	// Resumo legível, renderizado no momento da escrita
	Summary string

	// Snapshots antes/depois da mutação; com os dois presentes o
	// diff vira linhas de AuditLogChange
	Previous map[string]any
	Next     map[string]any

	// Contexto livre da ação (qual workflow disparou a cascata etc.)
	Metadata any
}

// ======================================================
// RECORDER
// ======================================================

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record monta e persiste um AuditLog com suas mudanças, tudo numa
// transação só — o pai nunca fica apontando para mudanças
// parcialmente gravadas.
func (r *Recorder) Record(
	ctx context.Context,
	info RequestInfo,
	e Entry,
) (*models.AuditLog, error) {

	if !e.EntityType.Valid() {
		return nil, fmt.Errorf("audit: entity type inválido %q", e.EntityType)
	}
	if !e.Action.Valid() {
		return nil, fmt.Errorf("audit: action inválida %q", e.Action)
	}

	entry := models.AuditLog{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		Summary:    e.Summary,
		IPAddress:  strPtr(info.IPAddress),
		UserAgent:  strPtr(info.UserAgent),
	}

	// --------------------------------------------------
	// Snapshot do ator (id vivo + role/nome congelados)
	// --------------------------------------------------
	if info.ActorID != nil {
		entry.ActorID = info.ActorID
		entry.ActorRole = strPtr(info.ActorRole)

		var actor models.User
		err := r.db.WithContext(ctx).First(&actor, *info.ActorID).Error
		switch {
		case err == nil:
			entry.ActorName = strPtr(DisplayName(&actor))
		case errors.Is(err, gorm.ErrRecordNotFound):
			// usuário sumiu entre o token e a escrita; segue sem nome
		default:
			return nil, err
		}
	}

	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, err
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	changes := ComputeChanges(e.Previous, e.Next)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if len(changes) == 0 {
			return nil
		}

		rows := make([]models.AuditLogChange, 0, len(changes))
		for _, ch := range changes {
			rows = append(rows, models.AuditLogChange{
				AuditLogID:    entry.ID,
				Field:         ch.Field,
				PreviousValue: jsonValue(ch.Previous),
				NewValue:      jsonValue(ch.Next),
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		entry.Changes = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Capture é o Record que nunca estoura: falha de auditoria é logada
// e engolida — nunca derruba a mutação de negócio que documenta.
func (r *Recorder) Capture(c *gin.Context, e Entry) {
	ctx := context.Background()
	if c != nil {
		ctx = c.Request.Context()
	}

	if _, err := r.Record(ctx, RequestInfoFrom(c), e); err != nil {
		log.Printf("audit: falha ao registrar %s/%d (%s): %v",
			e.EntityType, e.EntityID, e.Action, err)
	}
}

// ======================================================
// HELPERS
// ======================================================

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonValue(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
