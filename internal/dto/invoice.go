package dto

import (
	"time"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to raise a new invoice.
type CreateInvoiceRequest struct {
	SupplierID    string              `json:"supplierID" binding:"required"`
	InvoiceNumber string              `json:"invoiceNumber" binding:"required"`
	InvoiceDate   time.Time           `json:"invoiceDate" binding:"required" time_format:"2006-01-02"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	CurrencyType  domain.CurrencyType `json:"currencyType" binding:"required,oneof=USD EUR GBP"`
}

// UpdateInvoiceRequest defines the fields the owning client may change while
// an invoice is still PENDING. Pointers distinguish "not provided" from a
// zero value.
type UpdateInvoiceRequest struct {
	InvoiceID     int64                `json:"invoiceID" binding:"required"`
	SupplierID    *string              `json:"supplierID"`
	InvoiceNumber *string              `json:"invoiceNumber"`
	InvoiceDate   *time.Time           `json:"invoiceDate" time_format:"2006-01-02"`
	Amount        *decimal.Decimal     `json:"amount"`
	CurrencyType  *domain.CurrencyType `json:"currencyType" binding:"omitempty,oneof=USD EUR GBP"`
}

// UpdateInvoiceStatusRequest is the bank's status-set operation payload.
type UpdateInvoiceStatusRequest struct {
	InvoiceID int64                `json:"invoiceID" binding:"required"`
	Status    domain.InvoiceStatus `json:"status" binding:"required,oneof=PENDING IN_REVIEW APPROVED REJECTED"`
}

// InvoiceSearchCriteria is the sparse, all-optional query object. Absent
// fields impose no constraint. Status and currency sets are OR-combined
// internally; every active criterion ANDs with the rest.
type InvoiceSearchCriteria struct {
	ClientID      *string               `form:"clientId" json:"clientId"`
	SupplierID    *string               `form:"supplierId" json:"supplierId"`
	InvoiceNumber *string               `form:"invoiceNumber" json:"invoiceNumber"`
	DateFrom      *time.Time            `form:"dateFrom" json:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time            `form:"dateTo" json:"dateTo" time_format:"2006-01-02"`
	Ageing        *int                  `form:"ageing" json:"ageing"`
	Status        []domain.InvoiceStatus `form:"status" json:"status"`
	CurrencyType  []domain.CurrencyType  `form:"currencyType" json:"currencyType"`
	Page          int                   `form:"page,default=0" json:"page"`
	Size          int                   `form:"size,default=20" json:"size"`
}

// SupplierSummary is the counterparty shape embedded in invoice views.
type SupplierSummary struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// ClientSummary is the counterparty shape embedded in invoice views.
type ClientSummary struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// BankInvoiceResponse is the bank's read shape: full detail including both
// counterparties.
type BankInvoiceResponse struct {
	InvoiceID     int64                `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyType  domain.CurrencyType  `json:"currencyType"`
	Status        domain.InvoiceStatus `json:"status"`
	Ageing        int                  `json:"ageing"`
	Supplier      *SupplierSummary     `json:"supplier"`
	Client        *ClientSummary       `json:"client"`
}

// ClientInvoiceResponse is the client's read shape: invoice detail plus the
// supplier counterparty.
type ClientInvoiceResponse struct {
	InvoiceID     int64                `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyType  domain.CurrencyType  `json:"currencyType"`
	Status        domain.InvoiceStatus `json:"status"`
	Ageing        int                  `json:"ageing"`
	Supplier      *SupplierSummary     `json:"supplier"`
}

// SupplierInvoiceResponse is the supplier's read shape: invoice detail plus
// the client counterparty. Client may be null until the invoice is claimed.
type SupplierInvoiceResponse struct {
	InvoiceID     int64                `json:"invoiceID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   time.Time            `json:"invoiceDate"`
	Amount        decimal.Decimal      `json:"amount"`
	CurrencyType  domain.CurrencyType  `json:"currencyType"`
	Status        domain.InvoiceStatus `json:"status"`
	Ageing        int                  `json:"ageing"`
	Client        *ClientSummary       `json:"client"`
}

// InvoicePage wraps one page of invoice views with pagination metadata.
type InvoicePage[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	NumberOfElements int   `json:"numberOfElements"`
}

// DeleteInvoiceResponse reports the id of a deleted invoice.
type DeleteInvoiceResponse struct {
	InvoiceID int64 `json:"invoiceID"`
}

func toSupplierSummary(s *domain.Supplier) *SupplierSummary {
	if s == nil {
		return nil
	}
	return &SupplierSummary{SupplierID: s.SupplierID, Name: s.Name, Email: s.Email}
}

func toClientSummary(c *domain.Client) *ClientSummary {
	if c == nil {
		return nil
	}
	return &ClientSummary{ClientID: c.ClientID, Name: c.Name, Email: c.Email}
}

// ToBankInvoiceResponse projects an invoice with its linked parties into the
// bank view.
func ToBankInvoiceResponse(inv domain.Invoice, supplier *domain.Supplier, client *domain.Client, today time.Time) BankInvoiceResponse {
	return BankInvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Amount:        inv.Amount,
		CurrencyType:  inv.CurrencyType,
		Status:        inv.Status,
		Ageing:        inv.Ageing(today),
		Supplier:      toSupplierSummary(supplier),
		Client:        toClientSummary(client),
	}
}

// ToClientInvoiceResponse projects an invoice into the client view. The
// client counterparty is omitted since the caller is the client.
func ToClientInvoiceResponse(inv domain.Invoice, supplier *domain.Supplier, today time.Time) ClientInvoiceResponse {
	return ClientInvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Amount:        inv.Amount,
		CurrencyType:  inv.CurrencyType,
		Status:        inv.Status,
		Ageing:        inv.Ageing(today),
		Supplier:      toSupplierSummary(supplier),
	}
}

// ToSupplierInvoiceResponse projects an invoice into the supplier view. A
// missing linked client renders as null rather than an error.
func ToSupplierInvoiceResponse(inv domain.Invoice, client *domain.Client, today time.Time) SupplierInvoiceResponse {
	return SupplierInvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Amount:        inv.Amount,
		CurrencyType:  inv.CurrencyType,
		Status:        inv.Status,
		Ageing:        inv.Ageing(today),
		Client:        toClientSummary(client),
	}
}
