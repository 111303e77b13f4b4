package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/audit"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/httperr"
	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

type WorkflowHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewWorkflowHandler(db *gorm.DB, rec *audit.Recorder) *WorkflowHandler {
	return &WorkflowHandler{db: db, audit: rec}
}

// --------- Requests ---------

type CreateWorkflowRequest struct {
	ReservationID uint     `json:"reservation_id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Steps         []string `json:"steps" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *WorkflowHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var wf models.Workflow
	if err := h.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&wf, "id = ?", id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "workflow_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_workflow"})
		return
	}

	c.JSON(http.StatusOK, wf)
}

func (h *WorkflowHandler) Create(c *gin.Context) {
	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var rv models.Reservation
	if err := h.db.First(&rv, req.ReservationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reservation_not_found"})
		return
	}

	wf := models.Workflow{
		ReservationID: rv.ID,
		Name:          req.Name,
		Status:        "active",
	}

	for i, name := range req.Steps {
		wf.Steps = append(wf.Steps, models.WorkflowStep{
			Name:     name,
			Position: i + 1,
			Status:   "pending",
		})
	}

	if err := h.db.Create(&wf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_workflow"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityWorkflow,
		EntityID:   wf.ID,
		Action:     models.ActionCreated,
		Summary:    "Fluxo de reparo criado",
		Next:       audit.Snapshot(&wf),
		Metadata:   map[string]any{"reservation_id": rv.ID, "steps": len(wf.Steps)},
	})

	c.JSON(http.StatusCreated, wf)
}

// CompleteStep conclui um passo; o último passo concluído encerra o
// fluxo em cascata, com o passo disparador registrado no metadata do
// log do workflow.
func (h *WorkflowHandler) CompleteStep(c *gin.Context) {
	stepID := c.Param("stepId")

	var step models.WorkflowStep
	if err := h.db.First(&step, "id = ?", stepID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "step_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_step"})
		return
	}

	if step.Status == "completed" {
		httperr.BadRequest(c, "invalid_state", "Passo já concluído.")
		return
	}

	stepBefore := audit.Snapshot(&step)
	prevStatus := step.Status

	now := time.Now()
	step.Status = "completed"
	step.CompletedAt = &now

	if err := h.db.Save(&step).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_step"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityWorkflowStep,
		EntityID:   step.ID,
		Action:     audit.ActionForStatusChange(prevStatus, step.Status),
		Summary:    "Passo do fluxo concluído",
		Previous:   stepBefore,
		Next:       audit.Snapshot(&step),
	})

	// --------------------------------------------------
	// Cascata: todos os passos concluídos → fluxo concluído
	// --------------------------------------------------
	var pending int64
	if err := h.db.Model(&models.WorkflowStep{}).
		Where("workflow_id = ? AND status <> 'completed'", step.WorkflowID).
		Count(&pending).Error; err == nil && pending == 0 {

		var wf models.Workflow
		if err := h.db.First(&wf, step.WorkflowID).Error; err == nil && wf.Status == "active" {
			wfBefore := audit.Snapshot(&wf)
			wfPrev := wf.Status

			wf.Status = "completed"
			if err := h.db.Save(&wf).Error; err == nil {
				h.audit.Capture(c, audit.Entry{
					EntityType: models.EntityWorkflow,
					EntityID:   wf.ID,
					Action:     audit.ActionForStatusChange(wfPrev, wf.Status),
					Summary:    "Fluxo de reparo concluído",
					Previous:   wfBefore,
					Next:       audit.Snapshot(&wf),
					Metadata: map[string]any{
						"triggered_by": "workflow_step",
						"step_id":      step.ID,
						"step_name":    step.Name,
					},
				})
			}
		}
	}

	c.JSON(http.StatusOK, step)
}
