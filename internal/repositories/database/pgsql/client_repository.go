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

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{db: db}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepository
var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

const clientColumns = `client_id, user_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
        INSERT INTO clients (client_id, user_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return storeErr("failed to save client", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(fmt.Sprintf("failed to find client by ID %s", clientID), err)
	}
	return client, nil
}

func (r *PgxClientRepository) FindClientByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1;`
	client, err := scanClient(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeErr(fmt.Sprintf("failed to find client by user ID %s", userID), err)
	}
	return client, nil
}

func (r *PgxClientRepository) FindClientsByIDs(ctx context.Context, clientIDs []string) (map[string]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, storeErr("failed to query clients by IDs", err)
	}
	defer rows.Close()

	clients := make(map[string]domain.Client, len(clientIDs))
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, storeErr("failed to scan client row", err)
		}
		clients[c.ClientID] = *c
	}
	if rows.Err() != nil {
		return nil, storeErr("error iterating client rows", rows.Err())
	}
	return clients, nil
}

func (r *PgxClientRepository) NextClientNumber(ctx context.Context) (int64, error) {
	var next int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('client_number_seq');`).Scan(&next); err != nil {
		return 0, storeErr("failed to allocate client number", err)
	}
	return next, nil
}
