package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/invoice"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	InvoiceService invoice.InvoiceService
}

func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{InvoiceService: svc}
}

// CreateInvoice handles POST /api/invoices.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.InvoiceService.CreateInvoice(c.Request.Context(), current.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMyInvoices handles GET /api/invoices.
func (h *InvoiceHandler) ListMyInvoices(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	invoices, err := h.InvoiceService.ListCustomerInvoices(c.Request.Context(), current.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// PayInvoice handles POST /api/invoices/:id/pay.
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	paid, err := h.InvoiceService.PayInvoice(c.Request.Context(), current.ID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paid)
}

// ListAllInvoices handles GET /api/invoices/admin and GET /api/admin/invoices.
func (h *InvoiceHandler) ListAllInvoices(c *gin.Context) {
	invoices, err := h.InvoiceService.ListAllInvoices(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoice handles PUT /api/admin/invoices/:id.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req models.AdminInvoiceUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.InvoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteInvoice handles DELETE /api/admin/invoices/:id.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.InvoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
