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

// Transições permitidas de fatura
var invoiceTransitions = map[string][]string{
	"draft":  {"issued", "cancelled"},
	"issued": {"paid", "cancelled"},
}

func invoiceCanTransition(from, to string) bool {
	for _, allowed := range invoiceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewInvoiceHandler(db *gorm.DB, rec *audit.Recorder) *InvoiceHandler {
	return &InvoiceHandler{db: db, audit: rec}
}

// --------- Requests ---------

type CreateInvoiceRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	QuoteID  *uint  `json:"quote_id"`
	Amount   string `json:"amount" binding:"required"`
	DueDate  string `json:"due_date"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *InvoiceHandler) List(c *gin.Context) {
	status := c.Query("status")

	q := h.db.Preload("Client")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_invoices"})
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var invoice models.Invoice
	if err := h.db.Preload("Client").First(&invoice, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_invoice"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
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

	// Fatura ligada a orçamento só faz sentido se ele foi aprovado
	if req.QuoteID != nil {
		var quote models.Quote
		if err := h.db.First(&quote, *req.QuoteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quote_not_found"})
			return
		}
		if quote.Status != "approved" {
			httperr.BadRequest(c, "quote_not_approved", "O orçamento ainda não foi aprovado.")
			return
		}
	}

	invoice := models.Invoice{
		ClientID: client.ID,
		QuoteID:  req.QuoteID,
		Amount:   req.Amount,
		Status:   "draft",
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_due_date", "Data de vencimento inválida.")
			return
		}
		invoice.DueDate = &due
	}

	if err := h.db.Create(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_invoice"})
		return
	}

	entry := audit.Entry{
		EntityType: models.EntityInvoice,
		EntityID:   invoice.ID,
		Action:     models.ActionCreated,
		Summary:    "Fatura criada",
		Next:       audit.Snapshot(&invoice),
	}
	if req.QuoteID != nil {
		entry.Metadata = map[string]any{"quote_id": *req.QuoteID}
	}
	h.audit.Capture(c, entry)

	c.JSON(http.StatusCreated, invoice)
}

// UpdateStatus cobre emitir, pagar e cancelar; "paid" também carimba
// o paid_at.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var invoice models.Invoice
	if err := h.db.First(&invoice, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_invoice"})
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !invoiceCanTransition(invoice.Status, req.Status) {
		httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		return
	}

	before := audit.Snapshot(&invoice)
	prevStatus := invoice.Status

	invoice.Status = req.Status
	if req.Status == "paid" {
		now := time.Now()
		invoice.PaidAt = &now
	}

	if err := h.db.Save(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_invoice"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityInvoice,
		EntityID:   invoice.ID,
		Action:     audit.ActionForStatusChange(prevStatus, invoice.Status),
		Summary:    invoiceStatusSummary(invoice.Status),
		Previous:   before,
		Next:       audit.Snapshot(&invoice),
	})

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var invoice models.Invoice
	if err := h.db.First(&invoice, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_invoice"})
		return
	}

	// Fatura paga não se apaga
	if invoice.Status == "paid" {
		httperr.BadRequest(c, "invoice_paid", "Fatura paga não pode ser removida.")
		return
	}

	before := audit.Snapshot(&invoice)

	if err := h.db.Delete(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_invoice"})
		return
	}

	h.audit.Capture(c, audit.Entry{
		EntityType: models.EntityInvoice,
		EntityID:   invoice.ID,
		Action:     models.ActionDeleted,
		Summary:    "Fatura removida",
		Metadata:   before,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --------- Helpers ---------

func invoiceStatusSummary(status string) string {
	switch status {
	case "issued":
		return "Fatura emitida"
	case "paid":
		return "Fatura marcada como paga"
	case "cancelled":
		return "Fatura cancelada"
	default:
		return "Fatura atualizada"
	}
}
