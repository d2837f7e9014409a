package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSupplierRepository struct {
	db *pgxpool.Pool
}

func NewSupplierRepository(db *pgxpool.Pool) portsrepo.SupplierRepository {
	return &PgxSupplierRepository{db: db}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepository
var _ portsrepo.SupplierRepository = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, user_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.SupplierID,
		&s.UserID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Address,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
        INSERT INTO suppliers (supplier_id, user_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		supplier.SupplierID,
		supplier.UserID,
		supplier.Name,
		supplier.Email,
		supplier.Phone,
		supplier.Address,
		supplier.CreatedAt,
		supplier.CreatedBy,
		supplier.LastUpdatedAt,
		supplier.LastUpdatedBy,
	)
	if err != nil {
		return storeErr("failed to save supplier", err)
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`
	supplier, err := scanSupplier(r.db.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(fmt.Sprintf("failed to find supplier by ID %s", supplierID), err)
	}
	return supplier, nil
}

func (r *PgxSupplierRepository) FindSupplierByUserID(ctx context.Context, userID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE user_id = $1;`
	supplier, err := scanSupplier(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(fmt.Sprintf("failed to find supplier by user ID %s", userID), err)
	}
	return supplier, nil
}

func (r *PgxSupplierRepository) FindSuppliersByIDs(ctx context.Context, supplierIDs []string) (map[string]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, supplierIDs)
	if err != nil {
		return nil, storeErr("failed to query suppliers by IDs", err)
	}
	defer rows.Close()

	suppliers := make(map[string]domain.Supplier, len(supplierIDs))
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, storeErr("failed to scan supplier row", err)
		}
		suppliers[s.SupplierID] = *s
	}
	if rows.Err() != nil {
		return nil, storeErr("error iterating supplier rows", rows.Err())
	}
	return suppliers, nil
}

func (r *PgxSupplierRepository) NextSupplierNumber(ctx context.Context) (int64, error) {
	var next int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('supplier_number_seq');`).Scan(&next); err != nil {
		return 0, storeErr("failed to allocate supplier number", err)
	}
	return next, nil
}
