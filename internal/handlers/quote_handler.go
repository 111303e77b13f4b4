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

// ======================================================
// STATUS
// ======================================================

// Transições permitidas de orçamento
var quoteTransitions = map[string][]string{
	"pending": {"sent", "approved", "rejected", "expired"},
	"sent":    {"approved", "rejected", "expired"},
}

func quoteCanTransition(from, to string) bool {
	for _, allowed := range quoteTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ======================================================
// HANDLER
// ======================================================

type QuoteHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewQuoteHandler(db *gorm.DB, rec *audit.Recorder) *QuoteHandler {
	return &QuoteHandler{db: db, audit: rec}
}

// --------- Requests ---------

type CreateQuoteRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	QuoteAmount string `json:"quote_amount" binding:"required"`
	Description string `json:"description"`
	ValidUntil  string `json:"valid_until"`
}

type UpdateQuoteRequest struct {
	QuoteAmount *string `json:"quote_amount,omitempty"`
	Description *string `json:"description,omitempty"`
	ValidUntil  *string `json:"valid_until,omitempty"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *QuoteHandler) List(c *gin.Context) {
	status := c.Query("status")

	q := h.db.Preload("Client")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var quotes []models.Quote
	if err := q.
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_quotes"})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.Preload("Client").First(&quote, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_quote"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var client models.Client
	if err := h.db.First(&client, req.ClientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_not_found"})
		return
	}

	quote := models.Quote{
		ClientID:    client.ID,
		QuoteAmount: req.QuoteAmount,
		Status:      "pending",
		Description: req.Description,
	}

	if req.ValidUntil != "" {
		if until, err := time.Parse("2006-01-02", req.ValidUntil); err == nil {
			quote.ValidUntil = &until
		} else {
			httperr.BadRequest(c, "invalid_valid_until", "Data de validade inválida.")
			return
		}
	}

	if err := h.db.Create(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_quote"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityQuote,
		EntityID:   quote.ID,
		Action:     models.ActionCreated,
		Summary:    "Orçamento criado",
		Next:       audit.Snapshot(&quote),
	})

	c.JSON(http.StatusCreated, quote)
}

func (h *QuoteHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_quote"})
		return
	}

	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	before := audit.Snapshot(&quote)

	if req.QuoteAmount != nil {
		quote.QuoteAmount = *req.QuoteAmount
	}
	if req.Description != nil {
		quote.Description = *req.Description
	}
	if req.ValidUntil != nil {
		until, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err != nil {
			httperr.BadRequest(c, "invalid_valid_until", "Data de validade inválida.")
			return
		}
		quote.ValidUntil = &until
	}

	if err := h.db.Save(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_quote"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityQuote,
		EntityID:   quote.ID,
		Action:     models.ActionUpdated,
		Summary:    "Orçamento atualizado",
		Previous:   before,
		Next:       audit.Snapshot(&quote),
	})

	c.JSON(http.StatusOK, quote)
}

// UpdateStatus faz a transição de status do orçamento e deriva a
// ação de auditoria da transição (approved → validated etc.)
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_quote"})
		return
	}

	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !quoteCanTransition(quote.Status, req.Status) {
		httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		return
	}

	before := audit.Snapshot(&quote)
	prevStatus := quote.Status

	quote.Status = req.Status

	if err := h.db.Save(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_quote"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityQuote,
		EntityID:   quote.ID,
		Action:     audit.ActionForStatusChange(prevStatus, quote.Status),
		Summary:    quoteStatusSummary(quote.Status),
		Previous:   before,
		Next:       audit.Snapshot(&quote),
	})

	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "quote_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_quote"})
		return
	}

	before := audit.Snapshot(&quote)

	if err := h.db.Delete(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_quote"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityQuote,
		EntityID:   quote.ID,
		Action:     models.ActionDeleted,
		Summary:    "Orçamento removido",
		Metadata:   before,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --------- Helpers ---------

func quoteStatusSummary(status string) string {
	switch status {
	case "sent":
		return "Orçamento enviado"
	case "approved":
		return "Orçamento aprovado"
	case "rejected":
		return "Orçamento recusado"
	case "expired":
		return "Orçamento expirado"
	default:
		return "Orçamento atualizado"
	}
}
