package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

const installmentColumns = `id, sale_id, number, amount, due_date, status, paid_date, paid_amount,
	created_at, updated_at`

type InstallmentRepository struct {
	db *DB
}

func NewInstallmentRepository(db *DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) Create(ctx context.Context, inst *installment.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query, installmentArgs(inst)...)
	if err != nil {
		return fmt.Errorf("failed to create installment: %w", err)
	}
	return nil
}

// CreateMany persists a whole schedule in one transaction: the batch is
// all-or-nothing.
func (r *InstallmentRepository) CreateMany(ctx context.Context, installments []*installment.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, inst := range installments {
		if _, err := stmt.ExecContext(ctx, installmentArgs(inst)...); err != nil {
			return fmt.Errorf("failed to insert installment %d: %w", inst.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installment batch: %w", err)
	}
	return nil
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id string) (*installment.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1`

	inst, err := scanInstallmentRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return inst, nil
}

func (r *InstallmentRepository) ListBySaleID(ctx context.Context, saleID string) ([]*installment.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE sale_id = $1
		ORDER BY number ASC
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

func (r *InstallmentRepository) ListOverdue(ctx context.Context, ownerID int64, now time.Time) ([]*installment.Installment, error) {
	query := `
		SELECT i.id, i.sale_id, i.number, i.amount, i.due_date, i.status, i.paid_date, i.paid_amount,
		       i.created_at, i.updated_at
		FROM installments i
		JOIN sales s ON i.sale_id = s.id
		WHERE s.owner_id = $1
		  AND i.status IN ('PENDENTE', 'ATRASADO')
		  AND i.due_date < $2
		ORDER BY i.due_date ASC, i.number ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue installments: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

func (r *InstallmentRepository) ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*installment.Installment, error) {
	query := `
		SELECT i.id, i.sale_id, i.number, i.amount, i.due_date, i.status, i.paid_date, i.paid_amount,
		       i.created_at, i.updated_at
		FROM installments i
		JOIN sales s ON i.sale_id = s.id
		WHERE s.owner_id = $1
		  AND i.status <> 'PAGO'
		  AND i.due_date BETWEEN $2 AND $3
		ORDER BY i.due_date ASC, i.number ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments by due date: %w", err)
	}
	defer rows.Close()

	return scanInstallments(rows)
}

func (r *InstallmentRepository) Update(ctx context.Context, inst *installment.Installment) error {
	result, err := r.db.ExecContext(ctx, updateInstallmentQuery, updateInstallmentArgs(inst)...)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return installment.ErrInstallmentNotFound
	}
	return nil
}

func (r *InstallmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM installments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete installment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return installment.ErrInstallmentNotFound
	}
	return nil
}

func (r *InstallmentRepository) DeleteBySaleID(ctx context.Context, saleID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM installments WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete installments of sale %s: %w", saleID, err)
	}
	return nil
}

// ApplyPayment writes the mutated installment and the owning sale's new
// running total inside one transaction, so the denormalized totalPaid
// counter and the installment set cannot drift apart under concurrent
// payments.
func (r *InstallmentRepository) ApplyPayment(ctx context.Context, inst *installment.Installment, saleID string, saleTotalPaid money.Money) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, updateInstallmentQuery, updateInstallmentArgs(inst)...); err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	saleQuery := `UPDATE sales SET total_paid = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, saleQuery, saleID, saleTotalPaid, inst.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update sale total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}
	return nil
}

const updateInstallmentQuery = `
	UPDATE installments
	SET status = $2, paid_date = $3, paid_amount = $4, updated_at = $5
	WHERE id = $1
`

func updateInstallmentArgs(inst *installment.Installment) []any {
	var paidDate sql.NullTime
	if inst.PaidDate != nil {
		paidDate = sql.NullTime{Time: *inst.PaidDate, Valid: true}
	}
	var paidAmount any
	if inst.PaidAmount != nil {
		paidAmount = *inst.PaidAmount
	}
	return []any{inst.ID, string(inst.Status), paidDate, paidAmount, inst.UpdatedAt}
}

func installmentArgs(inst *installment.Installment) []any {
	var paidDate sql.NullTime
	if inst.PaidDate != nil {
		paidDate = sql.NullTime{Time: *inst.PaidDate, Valid: true}
	}
	var paidAmount any
	if inst.PaidAmount != nil {
		paidAmount = *inst.PaidAmount
	}
	return []any{
		inst.ID, inst.SaleID, inst.Number, inst.Amount, inst.DueDate, string(inst.Status),
		paidDate, paidAmount, inst.CreatedAt, inst.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstallmentRow(row rowScanner) (*installment.Installment, error) {
	var inst installment.Installment
	var paidDate sql.NullTime
	var paidAmount decimal.NullDecimal

	err := row.Scan(
		&inst.ID, &inst.SaleID, &inst.Number, &inst.Amount, &inst.DueDate, &inst.Status,
		&paidDate, &paidAmount, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyNullableInstallmentFields(&inst, paidDate, paidAmount)
	return &inst, nil
}

func scanInstallments(rows *sql.Rows) ([]*installment.Installment, error) {
	var installments []*installment.Installment
	for rows.Next() {
		inst, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

func applyNullableInstallmentFields(inst *installment.Installment, paidDate sql.NullTime, paidAmount decimal.NullDecimal) {
	if paidDate.Valid {
		inst.PaidDate = &paidDate.Time
	}
	if paidAmount.Valid {
		if m, err := money.New(paidAmount.Decimal); err == nil {
			inst.PaidAmount = &m
		}
	}
}
