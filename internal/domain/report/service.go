package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

// DefaultTopClientsLimit caps the top-clients report when no limit is given.
const DefaultTopClientsLimit = 10

// Service recomputes period financial summaries on demand by scanning
// the installment set. Nothing is cached or denormalized here; every
// report is a fold over repository rows.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// window is one closed date interval [Start, End].
type window struct {
	Start time.Time
	End   time.Time
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// buckets says which report buckets one installment belongs to for a
// given window. Every summary, comparison and chart variant goes through
// this single classifier so the due-date and paid-date windows can never
// silently diverge between them.
type buckets struct {
	expected       bool
	expectedStatus installment.Status // PAGO, ATRASADO or PENDENTE split
	received       bool
}

func classify(row *InstallmentRow, w window, now time.Time) buckets {
	var b buckets

	if w.contains(row.DueDate) {
		b.expected = true
		switch {
		case row.Status == installment.StatusPago:
			b.expectedStatus = installment.StatusPago
		case row.DueDate.Before(now):
			b.expectedStatus = installment.StatusAtrasado
		default:
			b.expectedStatus = installment.StatusPendente
		}
	}

	if row.PaidDate != nil && row.PaidAmount != nil && w.contains(*row.PaidDate) {
		b.received = true
	}

	return b
}

// MonthlySummary builds the summary of one calendar month.
func (s *Service) MonthlySummary(ctx context.Context, ownerID int64, year int, month time.Month) (*Summary, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, errors.New("invalid year or month")
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	summary, err := s.buildSummary(ctx, ownerID, window{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	summary.Period = fmt.Sprintf("%02d-%04d", month, year)
	return summary, nil
}

// PeriodSummary builds the summary of an arbitrary date range.
func (s *Service) PeriodSummary(ctx context.Context, ownerID int64, start, end time.Time) (*Summary, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, errors.New("invalid period range")
	}
	return s.buildSummary(ctx, ownerID, window{Start: start, End: end})
}

// MonthComparison builds one summary per requested month, in input order.
func (s *Service) MonthComparison(ctx context.Context, ownerID int64, months []YearMonth) ([]*Summary, error) {
	if len(months) == 0 {
		return nil, errors.New("at least one month is required")
	}

	summaries := make([]*Summary, 0, len(months))
	for _, ym := range months {
		summary, err := s.MonthlySummary(ctx, ownerID, ym.Year, time.Month(ym.Month))
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %04d-%02d: %w", ym.Year, ym.Month, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Service) buildSummary(ctx context.Context, ownerID int64, w window) (*Summary, error) {
	dueRows, err := s.repo.ListByDueDateRange(ctx, ownerID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments by due date: %w", err)
	}
	paidRows, err := s.repo.ListByPaidDateRange(ctx, ownerID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments by paid date: %w", err)
	}

	// The two windows can overlap on the same installment; classify each
	// row exactly once.
	rows := make(map[string]*InstallmentRow, len(dueRows)+len(paidRows))
	for _, row := range dueRows {
		rows[row.InstallmentID] = row
	}
	for _, row := range paidRows {
		rows[row.InstallmentID] = row
	}

	now := time.Now()
	summary := &Summary{
		Start:           w.Start,
		End:             w.End,
		TotalExpected:   money.Zero(),
		ExpectedPaid:    money.Zero(),
		ExpectedOverdue: money.Zero(),
		ExpectedPending: money.Zero(),
		TotalReceived:   money.Zero(),
	}

	var expected, paid, overdue, pending, received decimal.Decimal
	for _, row := range rows {
		b := classify(row, w, now)

		if b.expected {
			summary.CountExpected++
			expected = expected.Add(row.Amount.Decimal())
			switch b.expectedStatus {
			case installment.StatusPago:
				summary.CountPaid++
				paid = paid.Add(row.Amount.Decimal())
			case installment.StatusAtrasado:
				summary.CountOverdue++
				overdue = overdue.Add(row.Amount.Decimal())
			default:
				summary.CountPending++
				pending = pending.Add(row.Amount.Decimal())
			}
		}

		if b.received {
			summary.CountReceived++
			received = received.Add(row.PaidAmount.Decimal())
		}
	}

	summary.TotalExpected = sumToMoney(expected)
	summary.ExpectedPaid = sumToMoney(paid)
	summary.ExpectedOverdue = sumToMoney(overdue)
	summary.ExpectedPending = sumToMoney(pending)
	summary.TotalReceived = sumToMoney(received)

	summary.ReceivedPercentage = percentage(received, expected)
	summary.PaidPercentage = percentage(paid, expected)
	summary.OverduePercentage = percentage(overdue, expected)
	summary.PendingPercentage = percentage(pending, expected)

	return summary, nil
}

// TopClients folds over the owner's whole book and ranks clients by
// total billed value. A client is flagged overdue when any non-paid
// installment has a past due date.
func (s *Service) TopClients(ctx context.Context, ownerID int64, limit int) ([]*ClientStat, error) {
	if limit <= 0 {
		limit = DefaultTopClientsLimit
	}

	rows, err := s.repo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}

	type clientAcc struct {
		stat   *ClientStat
		billed decimal.Decimal
		paid   decimal.Decimal
		open   decimal.Decimal
		sales  map[string]struct{}
	}

	now := time.Now()
	accs := make(map[string]*clientAcc)
	for _, row := range rows {
		acc, ok := accs[row.ClientID]
		if !ok {
			acc = &clientAcc{
				stat:  &ClientStat{ClientID: row.ClientID, ClientName: row.ClientName},
				sales: make(map[string]struct{}),
			}
			accs[row.ClientID] = acc
		}

		acc.sales[row.SaleID] = struct{}{}
		acc.stat.InstallmentCount++
		acc.billed = acc.billed.Add(row.Amount.Decimal())

		if row.PaidAmount != nil {
			acc.paid = acc.paid.Add(row.PaidAmount.Decimal())
		}
		if row.Status != installment.StatusPago {
			acc.open = acc.open.Add(row.Amount.Decimal())
			if row.DueDate.Before(now) {
				acc.stat.HasOverdue = true
			}
		}
	}

	stats := make([]*ClientStat, 0, len(accs))
	for _, acc := range accs {
		acc.stat.SalesCount = len(acc.sales)
		acc.stat.TotalBilled = sumToMoney(acc.billed)
		acc.stat.TotalPaid = sumToMoney(acc.paid)
		acc.stat.OpenAmount = sumToMoney(acc.open)
		stats = append(stats, acc.stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalBilled.Equal(stats[j].TotalBilled) {
			return stats[i].TotalBilled.GreaterThan(stats[j].TotalBilled)
		}
		return stats[i].ClientName < stats[j].ClientName
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// PaymentStatusDistribution buckets the owner's whole book by current
// status. Percentages are count-based shares of all installments.
func (s *Service) PaymentStatusDistribution(ctx context.Context, ownerID int64) ([]*StatusBucket, error) {
	rows, err := s.repo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}

	order := []installment.Status{installment.StatusPendente, installment.StatusPago, installment.StatusAtrasado}
	counts := make(map[installment.Status]int, len(order))
	amounts := make(map[installment.Status]decimal.Decimal, len(order))
	for _, row := range rows {
		counts[row.Status]++
		amounts[row.Status] = amounts[row.Status].Add(row.Amount.Decimal())
	}

	total := decimal.NewFromInt(int64(len(rows)))
	bucketsOut := make([]*StatusBucket, 0, len(order))
	for _, status := range order {
		bucketsOut = append(bucketsOut, &StatusBucket{
			Status:     status,
			Count:      counts[status],
			Amount:     sumToMoney(amounts[status]),
			Percentage: percentage(decimal.NewFromInt(int64(counts[status])), total),
		})
	}
	return bucketsOut, nil
}

// percentage returns part/total*100 rounded to two decimals. A zero
// denominator yields exactly 0, never NaN or infinity.
func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	p, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return p
}

// sumToMoney converts an accumulated sum of already-rounded non-negative
// amounts back to Money; the constructor cannot fail on such input.
func sumToMoney(d decimal.Decimal) money.Money {
	m, _ := money.New(d)
	return m
}
