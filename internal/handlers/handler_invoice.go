package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portssvc "github.com/finportal/invoice_finance_app/internal/core/ports/services"
	"github.com/finportal/invoice_finance_app/internal/dto"
	"github.com/finportal/invoice_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// NewInvoiceHandler creates a new invoiceHandler.
func NewInvoiceHandler(svc portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: svc}
}

// respondServiceError maps classified service failures to transport statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrExpired),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createInvoice godoc
// @Summary Raise a new invoice
// @Description Creates a new PENDING invoice owned by the calling client
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.ClientInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input or business rule failure"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, callerIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// updateInvoice godoc
// @Summary Update a pending invoice
// @Description Updates fields of a PENDING invoice owned by the calling client
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 201 {object} dto.ClientInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input or business rule failure"
// @Failure 403 {object} map[string]string "Caller does not own the invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.invoiceService.UpdateInvoice(c.Request.Context(), req, callerIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, updated)
}

// updateInvoiceStatus godoc
// @Summary Set the status of an invoice
// @Description Bank-only status transition; terminal and expired invoices are rejected
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 201 {object} dto.BankInvoiceResponse
// @Failure 400 {object} map[string]string "Terminal state, expired invoice, or invalid input"
// @Failure 403 {object} map[string]string "Caller is not a bank user"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/status [put]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerRole, ok := middleware.GetRoleFromContext(c)
	if !ok {
		logger.Error("Caller role not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), req, callerRole)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, updated)
}

// deleteInvoice godoc
// @Summary Delete a pending invoice
// @Description Deletes a PENDING invoice owned by the calling client
// @Tags invoices
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Success 200 {object} dto.DeleteInvoiceResponse
// @Failure 400 {object} map[string]string "Invoice no longer deletable"
// @Failure 403 {object} map[string]string "Caller does not own the invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn("Invalid invoice id in path", slog.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	callerIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deletedID, err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID, callerIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteInvoiceResponse{InvoiceID: deletedID})
}

// bindCriteria binds the sparse search criteria from query parameters.
func bindCriteria(c *gin.Context) (dto.InvoiceSearchCriteria, bool) {
	var criteria dto.InvoiceSearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind invoice search criteria", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return criteria, false
	}
	return criteria, true
}

// requireRole checks the resolved caller role against the expected one.
// The service layer re-checks where a rule depends on it; this gate keeps
// each retrieve endpoint scoped to its audience.
func requireRole(c *gin.Context, want domain.Role) bool {
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	if role != want {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}

// getBankInvoices godoc
// @Summary Search invoices as the bank
// @Description Paginated invoice search over all invoices, bank view
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoicePage[dto.BankInvoiceResponse]
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a bank user"
// @Security BearerAuth
// @Router /invoices/bank [get]
func (h *invoiceHandler) getBankInvoices(c *gin.Context) {
	if !requireRole(c, domain.RoleBank) {
		return
	}
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	page, err := h.invoiceService.GetBankInvoices(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getClientInvoices godoc
// @Summary Search invoices as a client
// @Description Paginated search scoped to invoices owned by the caller
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoicePage[dto.ClientInvoiceResponse]
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a client user"
// @Security BearerAuth
// @Router /invoices/client [get]
func (h *invoiceHandler) getClientInvoices(c *gin.Context) {
	if !requireRole(c, domain.RoleClient) {
		return
	}
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	callerIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.invoiceService.GetClientInvoices(c.Request.Context(), criteria, callerIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getSupplierInvoices godoc
// @Summary Search invoices as a supplier
// @Description Paginated search scoped to invoices addressed to the caller's supplier record
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoicePage[dto.SupplierInvoiceResponse]
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a supplier user"
// @Failure 404 {object} map[string]string "No supplier record for caller"
// @Security BearerAuth
// @Router /invoices/supplier [get]
func (h *invoiceHandler) getSupplierInvoices(c *gin.Context) {
	if !requireRole(c, domain.RoleSupplier) {
		return
	}
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	callerIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.invoiceService.GetSupplierInvoices(c.Request.Context(), criteria, callerIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// RegisterInvoiceRoutes registers routes related to invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, svc portssvc.InvoiceSvcFacade) {
	h := NewInvoiceHandler(svc)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.PUT("", h.updateInvoice)
		invoices.PUT("/status", h.updateInvoiceStatus)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.GET("/bank", h.getBankInvoices)
		invoices.GET("/client", h.getClientInvoices)
		invoices.GET("/supplier", h.getSupplierInvoices)
	}
}
