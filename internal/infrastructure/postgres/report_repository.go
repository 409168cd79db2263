package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain/report"
	"crediario/internal/shared/money"
)

const reportColumns = `i.id, i.sale_id, s.client_id, c.name, i.number, i.amount, i.due_date,
	i.status, i.paid_date, i.paid_amount`

const reportJoins = `
	FROM installments i
	JOIN sales s ON i.sale_id = s.id
	JOIN clients c ON s.client_id = c.id
`

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*report.InstallmentRow, error) {
	query := `
		SELECT ` + reportColumns + reportJoins + `
		WHERE s.owner_id = $1
		  AND i.due_date BETWEEN $2 AND $3
		ORDER BY i.due_date ASC, i.number ASC
	`
	return r.list(ctx, query, ownerID, start, end)
}

func (r *ReportRepository) ListByPaidDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*report.InstallmentRow, error) {
	query := `
		SELECT ` + reportColumns + reportJoins + `
		WHERE s.owner_id = $1
		  AND i.paid_date BETWEEN $2 AND $3
		ORDER BY i.paid_date ASC, i.number ASC
	`
	return r.list(ctx, query, ownerID, start, end)
}

func (r *ReportRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*report.InstallmentRow, error) {
	query := `
		SELECT ` + reportColumns + reportJoins + `
		WHERE s.owner_id = $1
		ORDER BY i.due_date ASC, i.number ASC
	`
	return r.list(ctx, query, ownerID)
}

func (r *ReportRepository) list(ctx context.Context, query string, args ...any) ([]*report.InstallmentRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	var result []*report.InstallmentRow
	for rows.Next() {
		var row report.InstallmentRow
		var paidDate sql.NullTime
		var paidAmount decimal.NullDecimal

		err := rows.Scan(
			&row.InstallmentID, &row.SaleID, &row.ClientID, &row.ClientName, &row.Number,
			&row.Amount, &row.DueDate, &row.Status, &paidDate, &paidAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		if paidDate.Valid {
			row.PaidDate = &paidDate.Time
		}
		if paidAmount.Valid {
			if m, err := money.New(paidAmount.Decimal); err == nil {
				row.PaidAmount = &m
			}
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}
