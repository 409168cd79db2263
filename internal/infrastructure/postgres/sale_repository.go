package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"crediario/internal/domain/sale"
)

const saleColumns = `id, owner_id, client_id, item_description, total_value, total_installments,
	payment_frequency, first_due_date, total_paid, sale_date, created_at, updated_at`

type SaleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.OwnerID, s.ClientID, s.ItemDescription, s.TotalValue, s.TotalInstallments,
		string(s.PaymentFrequency), s.FirstDueDate, s.TotalPaid, s.SaleDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id string) (*sale.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	var s sale.Sale
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.OwnerID, &s.ClientID, &s.ItemDescription, &s.TotalValue, &s.TotalInstallments,
		&s.PaymentFrequency, &s.FirstDueDate, &s.TotalPaid, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*sale.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE owner_id = $1
		ORDER BY sale_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale
	for rows.Next() {
		var s sale.Sale
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.ClientID, &s.ItemDescription, &s.TotalValue, &s.TotalInstallments,
			&s.PaymentFrequency, &s.FirstDueDate, &s.TotalPaid, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	query := `
		UPDATE sales
		SET total_paid = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, s.ID, s.TotalPaid, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}

func (r *SaleRepository) ListOwnerIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT owner_id FROM sales ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner IDs: %w", err)
	}
	defer rows.Close()

	var owners []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan owner ID: %w", err)
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}
