package pgsql

import (
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:  NewInvoiceRepository(dbPool),
		SupplierRepo: NewSupplierRepository(dbPool),
		ClientRepo:   NewClientRepository(dbPool),
	}
}
