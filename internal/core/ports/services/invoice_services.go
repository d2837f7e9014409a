package ports

import (
	"context"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
	"github.com/finportal/invoice_finance_app/internal/dto"
)

// InvoiceSvcFacade is the full invoice lifecycle and query surface. Caller
// identity and role are assumed already resolved by the transport layer.
type InvoiceSvcFacade interface {
	InvoiceLifecycleSvc
	InvoiceQuerySvc
}

// InvoiceLifecycleSvc covers the mutating operations.
type InvoiceLifecycleSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, callerIdentity string) (*dto.ClientInvoiceResponse, error)
	UpdateInvoice(ctx context.Context, req dto.UpdateInvoiceRequest, callerIdentity string) (*dto.ClientInvoiceResponse, error)
	UpdateInvoiceStatus(ctx context.Context, req dto.UpdateInvoiceStatusRequest, callerRole domain.Role) (*dto.BankInvoiceResponse, error)
	DeleteInvoice(ctx context.Context, invoiceID int64, callerIdentity string) (int64, error)
}

// InvoiceQuerySvc covers the role-scoped read paths.
type InvoiceQuerySvc interface {
	GetBankInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria) (*dto.InvoicePage[dto.BankInvoiceResponse], error)
	GetClientInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria, callerIdentity string) (*dto.InvoicePage[dto.ClientInvoiceResponse], error)
	GetSupplierInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria, callerIdentity string) (*dto.InvoicePage[dto.SupplierInvoiceResponse], error)
}
