package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finportal/invoice_finance_app/internal/core/ports/services"
	"github.com/finportal/invoice_finance_app/internal/dto"
	"github.com/finportal/invoice_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests related to supplier and client parties.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

// NewPartyHandler creates a new partyHandler.
func NewPartyHandler(svc portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: svc}
}

// createSupplier godoc
// @Summary Register a supplier
// @Description Registers a supplier party with a generated code (SP_00001, ...)
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   supplier body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *partyHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.partyService.CreateSupplier(c.Request.Context(), req, creatorIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getSupplier godoc
// @Summary Get a supplier by code
// @Tags parties
// @Produce  json
// @Param   id path string true "Supplier code"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *partyHandler) getSupplier(c *gin.Context) {
	supplier, err := h.partyService.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// createClient godoc
// @Summary Register a client
// @Description Registers a client party with a generated code (CL_00001, ...)
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /clients [post]
func (h *partyHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorIdentity, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.partyService.CreateClient(c.Request.Context(), req, creatorIdentity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getClient godoc
// @Summary Get a client by code
// @Tags parties
// @Produce  json
// @Param   id path string true "Client code"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *partyHandler) getClient(c *gin.Context) {
	client, err := h.partyService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// RegisterPartyRoutes registers routes for supplier and client parties.
func RegisterPartyRoutes(rg *gin.RouterGroup, svc portssvc.PartySvcFacade) {
	h := NewPartyHandler(svc)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("/:id", h.getSupplier)
	}

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
	}
}
