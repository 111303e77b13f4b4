package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// ======================================================
// STORE
// ======================================================

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Filtros opcionais, combináveis por AND
type Filters struct {
	EntityType *models.EntityType
	EntityID   *uint
	ActorID    *uint
	Action     *models.AuditAction

	// Intervalo inclusivo de occurred_at
	Start *time.Time
	End   *time.Time

	Limit  int
	Offset int
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List devolve a página filtrada (mais recente primeiro) e o total
// que casa com os filtros antes da paginação.
func (s *Store) List(
	ctx context.Context,
	f Filters,
) ([]models.AuditLog, int64, error) {

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.EntityType != nil {
		q = q.Where("entity_type = ?", *f.EntityType)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.ActorID != nil {
		q = q.Where("actor_id = ?", *f.ActorID)
	}
	if f.Action != nil {
		q = q.Where("action = ?", *f.Action)
	}
	if f.Start != nil {
		q = q.Where("occurred_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("occurred_at <= ?", *f.End)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var logs []models.AuditLog
	if err := q.
		Preload("Actor").
		Preload("Changes").
		Order("occurred_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		return nil, 0, err
	}

	return logs, total, nil
}

// Get devolve um registro enriquecido com o ator atual (join vivo) e
// suas mudanças; os campos actor_name/actor_role seguem sendo a
// verdade histórica.
func (s *Store) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.AuditLog, error) {

	var entry models.AuditLog
	if err := s.db.WithContext(ctx).
		Preload("Actor").
		Preload("Changes").
		First(&entry, "id = ?", id).Error; err != nil {

		return nil, err
	}

	return &entry, nil
}

// EntityHistory devolve TODO o histórico de uma entidade, mais
// recente primeiro, sem truncar — paginação é problema de quem exibe.
func (s *Store) EntityHistory(
	ctx context.Context,
	entityType models.EntityType,
	entityID uint,
) ([]models.AuditLog, error) {

	var logs []models.AuditLog
	if err := s.db.WithContext(ctx).
		Preload("Actor").
		Preload("Changes").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("occurred_at DESC").
		Find(&logs).Error; err != nil {

		return nil, err
	}

	return logs, nil
}
