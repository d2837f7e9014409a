package ports

import (
	"context"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
)

// SupplierRepository defines persistence operations for Suppliers.
type SupplierRepository interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	FindSupplierByUserID(ctx context.Context, userID string) (*domain.Supplier, error)
	FindSuppliersByIDs(ctx context.Context, supplierIDs []string) (map[string]domain.Supplier, error)
	// NextSupplierNumber returns the next value of the supplier code sequence.
	NextSupplierNumber(ctx context.Context) (int64, error)
}

// ClientRepository defines persistence operations for Clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	FindClientByUserID(ctx context.Context, userID string) (*domain.Client, error)
	FindClientsByIDs(ctx context.Context, clientIDs []string) (map[string]domain.Client, error)
	// NextClientNumber returns the next value of the client code sequence.
	NextClientNumber(ctx context.Context) (int64, error)
}

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	InvoiceRepo  InvoiceRepository
	SupplierRepo SupplierRepository
	ClientRepo   ClientRepository
}
