package ports

import (
	"context"

	"github.com/finportal/invoice_finance_app/internal/dto"
)

// PartySvcFacade registers and resolves the supplier and client parties
// referenced by invoices. Registration assigns sequential business codes
// ("SP_00001", "CL_00001"); party records are never mutated by the invoice
// lifecycle.
type PartySvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorIdentity string) (*dto.SupplierResponse, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*dto.SupplierResponse, error)
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorIdentity string) (*dto.ClientResponse, error)
	GetClientByID(ctx context.Context, clientID string) (*dto.ClientResponse, error)
}
