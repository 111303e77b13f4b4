package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store *audit.Store
}

func NewAuditLogsHandler(store *audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

// ======================================================
// LIST
// ======================================================

// Filtro malformado é erro do cliente (400), nunca vira lista vazia
// silenciosa.
func (h *AuditLogsHandler) List(c *gin.Context) {
	var filters audit.Filters

	if v := c.Query("entityType"); v != "" {
		et, ok := models.ParseEntityType(v)
		if !ok {
			httperr.BadRequest(c, "invalid_entity_type", "Tipo de entidade inválido.")
			return
		}
		filters.EntityType = &et
	}

	if v := c.Query("entityId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_entity_id", "ID de entidade inválido.")
			return
		}
		entityID := uint(id)
		filters.EntityID = &entityID
	}

	if v := c.Query("actorId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_actor_id", "ID de usuário inválido.")
			return
		}
		actorID := uint(id)
		filters.ActorID = &actorID
	}

	if v := c.Query("action"); v != "" {
		action, ok := models.ParseAuditAction(v)
		if !ok {
			httperr.BadRequest(c, "invalid_action", "Ação inválida.")
			return
		}
		filters.Action = &action
	}

	if v := c.Query("startDate"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
			return
		}
		filters.Start = &start
	}

	if v := c.Query("endDate"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		// intervalo inclusivo: o dia final entra inteiro
		end := day.Add(24*time.Hour - time.Nanosecond)
		filters.End = &end
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(audit.DefaultListLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		httperr.BadRequest(c, "invalid_limit", "Limite inválido.")
		return
	}
	filters.Limit = limit

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		httperr.BadRequest(c, "invalid_offset", "Offset inválido.")
		return
	}
	filters.Offset = offset

	logs, total, err := h.store.List(c.Request.Context(), filters)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"logs":   logs,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// ======================================================
// GET
// ======================================================

func (h *AuditLogsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	entry, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "audit_log_not_found", "Log não encontrado.")
			return
		}
		httperr.Internal(c, "audit_get_failed", "Erro ao buscar log.")
		return
	}

	c.JSON(200, entry)
}

// ======================================================
// ENTITY HISTORY
// ======================================================

// Histórico completo de uma entidade; ausência de histórico é um
// resultado vazio válido, não erro.
func (h *AuditLogsHandler) EntityHistory(c *gin.Context) {
	et, ok := models.ParseEntityType(c.Param("entityType"))
	if !ok {
		httperr.BadRequest(c, "invalid_entity_type", "Tipo de entidade inválido.")
		return
	}

	idVal, err := strconv.ParseUint(c.Param("entityId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_entity_id", "ID de entidade inválido.")
		return
	}

	logs, err := h.store.EntityHistory(c.Request.Context(), et, uint(idVal))
	if err != nil {
		httperr.Internal(c, "audit_history_failed", "Erro ao buscar histórico.")
		return
	}

	c.JSON(200, gin.H{
		"entity_type": et,
		"entity_id":   idVal,
		"logs":        logs,
	})
}
