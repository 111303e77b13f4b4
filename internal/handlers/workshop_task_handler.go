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

// Transições permitidas de tarefa
var taskTransitions = map[string][]string{
	"open":        {"in_progress", "completed", "cancelled"},
	"in_progress": {"completed", "cancelled"},
}

func taskCanTransition(from, to string) bool {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ======================================================
// HANDLER
// ======================================================

type WorkshopTaskHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewWorkshopTaskHandler(db *gorm.DB, rec *audit.Recorder) *WorkshopTaskHandler {
	return &WorkshopTaskHandler{db: db, audit: rec}
}

// --------- Requests ---------

type CreateWorkshopTaskRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	AssignedToID  *uint  `json:"assigned_to_id"`
	ReservationID *uint  `json:"reservation_id"`
	DueDate       string `json:"due_date"`
}

type UpdateWorkshopTaskRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	AssignedToID *uint   `json:"assigned_to_id,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// --------- Handlers ---------

func (h *WorkshopTaskHandler) List(c *gin.Context) {
	status := c.Query("status")

	q := h.db.Preload("AssignedTo")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var tasks []models.WorkshopTask
	if err := q.
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *WorkshopTaskHandler) Create(c *gin.Context) {
	var req CreateWorkshopTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	task := models.WorkshopTask{
		Title:         req.Title,
		Description:   req.Description,
		Status:        "open",
		AssignedToID:  req.AssignedToID,
		ReservationID: req.ReservationID,
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_due_date", "Data limite inválida.")
			return
		}
		task.DueDate = &due
	}

	if err := h.db.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_task"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityWorkshopTask,
		EntityID:   task.ID,
		Action:     models.ActionCreated,
		Summary:    "Tarefa criada",
		Next:       audit.Snapshot(&task),
	})

	c.JSON(http.StatusCreated, task)
}

func (h *WorkshopTaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var task models.WorkshopTask
	if err := h.db.First(&task, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_task"})
		return
	}

	var req UpdateWorkshopTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	before := audit.Snapshot(&task)
	prevStatus := task.Status

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedToID != nil {
		task.AssignedToID = req.AssignedToID
	}
	if req.Status != nil {
		if !taskCanTransition(task.Status, *req.Status) {
			httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
			return
		}
		task.Status = *req.Status
	}

	if err := h.db.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_task"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityWorkshopTask,
		EntityID:   task.ID,
		Action:     audit.ActionForStatusChange(prevStatus, task.Status),
		Summary:    "Tarefa atualizada",
		Previous:   before,
		Next:       audit.Snapshot(&task),
	})

	c.JSON(http.StatusOK, task)
}

func (h *WorkshopTaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var task models.WorkshopTask
	if err := h.db.First(&task, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_task"})
		return
	}

	before := audit.Snapshot(&task)

	if err := h.db.Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_task"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityWorkshopTask,
		EntityID:   task.ID,
		Action:     models.ActionDeleted,
		Summary:    "Tarefa removida",
		Metadata:   before,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
