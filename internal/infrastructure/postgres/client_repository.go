package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crediario/internal/domain/client"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, params client.CreateParams) (*client.Client, error) {
	query := `
		INSERT INTO clients (id, owner_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, owner_id, name, email, phone, created_at, updated_at
	`

	now := time.Now()
	var c client.Client
	var email, phone sql.NullString

	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.OwnerID, params.Name, params.Email, params.Phone, now,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &email, &phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	applyNullableClientFields(&c, email, phone)
	return &c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	query := `
		SELECT id, owner_id, name, email, phone, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var c client.Client
	var email, phone sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &email, &phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	applyNullableClientFields(&c, email, phone)
	return &c, nil
}

func (r *ClientRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*client.Client, error) {
	query := `
		SELECT id, owner_id, name, email, phone, created_at, updated_at
		FROM clients
		WHERE owner_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		var c client.Client
		var email, phone sql.NullString
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &email, &phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		applyNullableClientFields(&c, email, phone)
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return exists, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func applyNullableClientFields(c *client.Client, email, phone sql.NullString) {
	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}
}
