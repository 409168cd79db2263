package report

import (
	"context"
	"time"

	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

// InstallmentRow is an installment joined with its sale and client, the
// unit every report folds over.
type InstallmentRow struct {
	InstallmentID string
	SaleID        string
	ClientID      string
	ClientName    string
	Number        int
	Amount        money.Money
	DueDate       time.Time
	Status        installment.Status
	PaidDate      *time.Time
	PaidAmount    *money.Money
}

// Repository defines the read-side data access the aggregator needs.
type Repository interface {
	// ListByDueDateRange returns rows (any status) due within [start, end].
	ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error)

	// ListByPaidDateRange returns rows whose paid date falls within
	// [start, end], regardless of their due date.
	ListByPaidDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error)

	// ListByOwnerID returns every row of the owner's book.
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*InstallmentRow, error)
}

// YearMonth identifies one calendar month for the comparison report.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Summary is the financial picture of one period. The expected side is
// filtered by due date, the received side by paid date; the two windows
// are independent, so an installment due in March and paid in April
// shows up in March's expected and April's received.
type Summary struct {
	Period string    `json:"period,omitempty"` // "MM-YYYY" for monthly summaries
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`

	TotalExpected   money.Money `json:"totalExpected"`
	ExpectedPaid    money.Money `json:"expectedPaid"`
	ExpectedOverdue money.Money `json:"expectedOverdue"`
	ExpectedPending money.Money `json:"expectedPending"`
	TotalReceived   money.Money `json:"totalReceived"`

	CountExpected int `json:"countExpected"`
	CountPaid     int `json:"countPaid"`
	CountOverdue  int `json:"countOverdue"`
	CountPending  int `json:"countPending"`
	CountReceived int `json:"countReceived"`

	ReceivedPercentage float64 `json:"receivedPercentage"`
	PaidPercentage     float64 `json:"paidPercentage"`
	OverduePercentage  float64 `json:"overduePercentage"`
	PendingPercentage  float64 `json:"pendingPercentage"`
}

// ClientStat is one entry of the top-clients report, folded over all of
// the client's sales and installments rather than a single period.
type ClientStat struct {
	ClientID         string      `json:"clientId"`
	ClientName       string      `json:"clientName"`
	SalesCount       int         `json:"salesCount"`
	InstallmentCount int         `json:"installmentCount"`
	TotalBilled      money.Money `json:"totalBilled"`
	TotalPaid        money.Money `json:"totalPaid"`
	OpenAmount       money.Money `json:"openAmount"`
	HasOverdue       bool        `json:"hasOverdue"`
}

// StatusBucket is one entry of the payment-status distribution.
type StatusBucket struct {
	Status     installment.Status `json:"status"`
	Count      int                `json:"count"`
	Amount     money.Money        `json:"amount"`
	Percentage float64            `json:"percentage"`
}
