package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{db: db}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepository
var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

// storeErr classifies infrastructure failures so callers can distinguish
// them from business rule failures via apperrors.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrStoreUnavailable)
}

const invoiceColumns = `invoice_id, invoice_number, supplier_id, client_id, owner_id, invoice_date, amount, currency_type, status, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.InvoiceNumber,
		&inv.SupplierID,
		&inv.ClientID,
		&inv.OwnerID,
		&inv.InvoiceDate,
		&inv.Amount,
		&inv.CurrencyType,
		&inv.Status,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	query := `
        INSERT INTO invoices (invoice_number, supplier_id, client_id, owner_id, invoice_date, amount, currency_type, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING invoice_id;
    `
	err := r.db.QueryRow(ctx, query,
		invoice.InvoiceNumber,
		invoice.SupplierID,
		invoice.ClientID,
		invoice.OwnerID,
		invoice.InvoiceDate,
		invoice.Amount,
		invoice.CurrencyType,
		invoice.Status,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	).Scan(&invoice.InvoiceID)
	if err != nil {
		return nil, storeErr("failed to save invoice", err)
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.db.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(fmt.Sprintf("failed to find invoice by ID %d", invoiceID), err)
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) ExistsByNumber(ctx context.Context, supplierID, invoiceNumber string, excludeInvoiceID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM invoices
            WHERE supplier_id = $1 AND invoice_number = $2 AND invoice_id <> $3
        );
    `
	var exists bool
	err := r.db.QueryRow(ctx, query, supplierID, invoiceNumber, excludeInvoiceID).Scan(&exists)
	if err != nil {
		return false, storeErr("failed to check invoice number uniqueness", err)
	}
	return exists, nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
        UPDATE invoices
        SET invoice_number = $1, supplier_id = $2, client_id = $3, invoice_date = $4,
            amount = $5, currency_type = $6, status = $7, last_updated_at = $8, last_updated_by = $9
        WHERE invoice_id = $10;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		invoice.InvoiceNumber,
		invoice.SupplierID,
		invoice.ClientID,
		invoice.InvoiceDate,
		invoice.Amount,
		invoice.CurrencyType,
		invoice.Status,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		invoice.InvoiceID,
	)
	if err != nil {
		return storeErr("failed to update invoice", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return storeErr("failed to delete invoice", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// buildInvoiceWhere translates the sparse filter into a conjunctive WHERE
// clause with positional args. The returned clause is empty when no
// criterion is active. Ageing composes as an upper bound on invoice_date:
// an invoice aged at least N days was dated on or before today minus N days.
func buildInvoiceWhere(filter portsrepo.InvoiceFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.SupplierID != nil {
		add("supplier_id = $%d", *filter.SupplierID)
	}
	if filter.ClientID != nil {
		add("client_id = $%d", *filter.ClientID)
	}
	if filter.OwnerID != nil {
		add("owner_id = $%d", *filter.OwnerID)
	}
	if filter.InvoiceNumber != nil {
		add("invoice_number = $%d", *filter.InvoiceNumber)
	}
	if filter.DateFrom != nil {
		add("invoice_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("invoice_date <= $%d", *filter.DateTo)
	}
	if filter.Ageing != nil {
		cutoff := filter.Today.AddDate(0, 0, -*filter.Ageing)
		add("invoice_date <= $%d", cutoff)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		add("status = ANY($%d)", statuses)
	}
	if len(filter.Currencies) > 0 {
		currencies := make([]string, len(filter.Currencies))
		for i, c := range filter.Currencies {
			currencies[i] = string(c)
		}
		add("currency_type = ANY($%d)", currencies)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PgxInvoiceRepository) QueryInvoices(ctx context.Context, filter portsrepo.InvoiceFilter, page int, size int) ([]domain.Invoice, int64, error) {
	where, args := buildInvoiceWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM invoices` + where + `;`
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("failed to count invoices", err)
	}

	pageQuery := fmt.Sprintf(
		`SELECT `+invoiceColumns+` FROM invoices%s ORDER BY invoice_id ASC LIMIT $%d OFFSET $%d;`,
		where, len(args)+1, len(args)+2,
	)
	pageArgs := append(append([]any{}, args...), size, page*size)

	rows, err := r.db.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, storeErr("failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, storeErr("failed to scan invoice row", err)
		}
		invoices = append(invoices, *inv)
	}
	if rows.Err() != nil {
		return nil, 0, storeErr("error iterating invoice rows", rows.Err())
	}

	return invoices, total, nil
}
