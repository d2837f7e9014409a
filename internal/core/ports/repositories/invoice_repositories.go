package ports

import (
	"context"
	"time"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
)

// InvoiceFilter is the sparse predicate set for invoice queries. Nil pointer
// fields and empty slices impose no constraint; all active criteria combine
// with logical AND. Ageing selects invoices whose age in days, today minus
// invoice date, is at least the given value.
type InvoiceFilter struct {
	ClientID      *string
	SupplierID    *string
	OwnerID       *string
	InvoiceNumber *string
	DateFrom      *time.Time
	DateTo        *time.Time
	Ageing        *int
	Statuses      []domain.InvoiceStatus
	Currencies    []domain.CurrencyType

	// Today anchors the ageing computation so that repeated calls with equal
	// criteria stay stable within a request.
	Today time.Time
}

// InvoiceRepository defines the persistence operations for Invoices.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	// ExistsByNumber reports whether another non-deleted invoice shares
	// supplier+number. excludeInvoiceID ignores the invoice being updated;
	// pass 0 on create.
	ExistsByNumber(ctx context.Context, supplierID, invoiceNumber string, excludeInvoiceID int64) (bool, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID int64) error
	// QueryInvoices runs a paginated conjunctive query and reports the total
	// number of matches. Ordering is invoice_id ascending.
	QueryInvoices(ctx context.Context, filter InvoiceFilter, page int, size int) ([]domain.Invoice, int64, error)
}
