package report

import (
	"context"
	"testing"
	"time"

	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	ListByDueDateRangeFunc  func(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error)
	ListByPaidDateRangeFunc func(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error)
	ListByOwnerIDFunc       func(ctx context.Context, ownerID int64) ([]*InstallmentRow, error)
}

func (m *MockRepository) ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error) {
	if m.ListByDueDateRangeFunc != nil {
		return m.ListByDueDateRangeFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

func (m *MockRepository) ListByPaidDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error) {
	if m.ListByPaidDateRangeFunc != nil {
		return m.ListByPaidDateRangeFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

func (m *MockRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*InstallmentRow, error) {
	if m.ListByOwnerIDFunc != nil {
		return m.ListByOwnerIDFunc(ctx, ownerID)
	}
	return nil, nil
}

func mustMoney(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.NewFromFloat(amount)
	if err != nil {
		t.Fatalf("money.NewFromFloat(%v) failed: %v", amount, err)
	}
	return m
}

func row(t *testing.T, id string, amount float64, dueDate time.Time, status installment.Status) *InstallmentRow {
	t.Helper()
	return &InstallmentRow{
		InstallmentID: id,
		SaleID:        "sale-" + id,
		ClientID:      "client-1",
		ClientName:    "Maria",
		Number:        1,
		Amount:        mustMoney(t, amount),
		DueDate:       dueDate,
		Status:        status,
	}
}

func paidRow(t *testing.T, id string, amount float64, dueDate time.Time, paidAmount float64, paidDate time.Time) *InstallmentRow {
	t.Helper()
	r := row(t, id, amount, dueDate, installment.StatusPago)
	pa := mustMoney(t, paidAmount)
	r.PaidAmount = &pa
	r.PaidDate = &paidDate
	return r
}

// repoFor builds a mock whose range methods filter the given rows the way
// the real repository would.
func repoFor(rows []*InstallmentRow) *MockRepository {
	return &MockRepository{
		ListByDueDateRangeFunc: func(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error) {
			var out []*InstallmentRow
			for _, r := range rows {
				if !r.DueDate.Before(start) && !r.DueDate.After(end) {
					out = append(out, r)
				}
			}
			return out, nil
		},
		ListByPaidDateRangeFunc: func(ctx context.Context, ownerID int64, start, end time.Time) ([]*InstallmentRow, error) {
			var out []*InstallmentRow
			for _, r := range rows {
				if r.PaidDate != nil && !r.PaidDate.Before(start) && !r.PaidDate.After(end) {
					out = append(out, r)
				}
			}
			return out, nil
		},
		ListByOwnerIDFunc: func(ctx context.Context, ownerID int64) ([]*InstallmentRow, error) {
			return rows, nil
		},
	}
}

// An installment due 2024-03-15 and paid 2024-04-02 belongs to March's
// expected and April's received, and to neither the other way around.
func TestMonthlySummary_DualWindow(t *testing.T) {
	ctx := context.Background()

	dueDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	paidDate := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	rows := []*InstallmentRow{paidRow(t, "a", 100, dueDate, 100, paidDate)}

	svc := NewService(repoFor(rows))

	march, err := svc.MonthlySummary(ctx, 1, 2024, time.March)
	if err != nil {
		t.Fatalf("MonthlySummary(March) failed: %v", err)
	}
	april, err := svc.MonthlySummary(ctx, 1, 2024, time.April)
	if err != nil {
		t.Fatalf("MonthlySummary(April) failed: %v", err)
	}

	if !march.TotalExpected.Equal(mustMoney(t, 100)) {
		t.Errorf("March expected = %s, want 100.00", march.TotalExpected)
	}
	if !march.TotalReceived.IsZero() {
		t.Errorf("March received = %s, want 0.00", march.TotalReceived)
	}
	if !april.TotalExpected.IsZero() {
		t.Errorf("April expected = %s, want 0.00", april.TotalExpected)
	}
	if !april.TotalReceived.Equal(mustMoney(t, 100)) {
		t.Errorf("April received = %s, want 100.00", april.TotalReceived)
	}

	if march.Period != "03-2024" {
		t.Errorf("March period = %q, want 03-2024", march.Period)
	}
}

func TestMonthlySummary_ExpectedSplit(t *testing.T) {
	ctx := context.Background()

	// All inside March 2024; "now" is far past, so unpaid = overdue.
	paid := paidRow(t, "paid", 100, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		100, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC))
	overdue := row(t, "late", 50, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), installment.StatusAtrasado)
	alsoLate := row(t, "late2", 50, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), installment.StatusPendente)

	svc := NewService(repoFor([]*InstallmentRow{paid, overdue, alsoLate}))

	summary, err := svc.MonthlySummary(ctx, 1, 2024, time.March)
	if err != nil {
		t.Fatalf("MonthlySummary failed: %v", err)
	}

	if summary.CountExpected != 3 {
		t.Errorf("CountExpected = %d, want 3", summary.CountExpected)
	}
	if !summary.TotalExpected.Equal(mustMoney(t, 200)) {
		t.Errorf("TotalExpected = %s, want 200.00", summary.TotalExpected)
	}
	if !summary.ExpectedPaid.Equal(mustMoney(t, 100)) {
		t.Errorf("ExpectedPaid = %s, want 100.00", summary.ExpectedPaid)
	}
	// Both unpaid rows are past due relative to the current clock, so
	// they land in the overdue split even though one is still PENDENTE.
	if !summary.ExpectedOverdue.Equal(mustMoney(t, 100)) {
		t.Errorf("ExpectedOverdue = %s, want 100.00", summary.ExpectedOverdue)
	}
	if summary.CountPending != 0 {
		t.Errorf("CountPending = %d, want 0", summary.CountPending)
	}

	if summary.ReceivedPercentage != 50 {
		t.Errorf("ReceivedPercentage = %v, want 50", summary.ReceivedPercentage)
	}
	if summary.PaidPercentage != 50 {
		t.Errorf("PaidPercentage = %v, want 50", summary.PaidPercentage)
	}
	if summary.OverduePercentage != 50 {
		t.Errorf("OverduePercentage = %v, want 50", summary.OverduePercentage)
	}
}

func TestMonthlySummary_EmptyPeriodPercentages(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repoFor(nil))

	summary, err := svc.MonthlySummary(ctx, 1, 2024, time.January)
	if err != nil {
		t.Fatalf("MonthlySummary failed: %v", err)
	}

	if summary.ReceivedPercentage != 0 {
		t.Errorf("ReceivedPercentage = %v, want exactly 0 for an empty period", summary.ReceivedPercentage)
	}
	if summary.PaidPercentage != 0 || summary.OverduePercentage != 0 || summary.PendingPercentage != 0 {
		t.Error("per-status percentages must be 0 for an empty period")
	}
	if !summary.TotalExpected.IsZero() || !summary.TotalReceived.IsZero() {
		t.Error("totals must be 0.00 for an empty period")
	}
}

func TestPeriodSummary_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repoFor(nil))

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.PeriodSummary(ctx, 1, start, start.AddDate(0, -1, 0)); err == nil {
		t.Error("PeriodSummary expected error for end before start, got nil")
	}
}

func TestMonthComparison(t *testing.T) {
	ctx := context.Background()

	dueMarch := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	rows := []*InstallmentRow{row(t, "a", 100, dueMarch, installment.StatusPendente)}

	svc := NewService(repoFor(rows))

	summaries, err := svc.MonthComparison(ctx, 1, []YearMonth{
		{Year: 2024, Month: 2},
		{Year: 2024, Month: 3},
	})
	if err != nil {
		t.Fatalf("MonthComparison failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if !summaries[0].TotalExpected.IsZero() {
		t.Errorf("February expected = %s, want 0.00", summaries[0].TotalExpected)
	}
	if !summaries[1].TotalExpected.Equal(mustMoney(t, 100)) {
		t.Errorf("March expected = %s, want 100.00", summaries[1].TotalExpected)
	}

	if _, err := svc.MonthComparison(ctx, 1, nil); err == nil {
		t.Error("MonthComparison expected error for empty month list, got nil")
	}
}

func TestTopClients(t *testing.T) {
	ctx := context.Background()
	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 1, 0)

	maria1 := row(t, "m1", 200, past, installment.StatusPendente) // past due, not paid
	maria2 := paidRow(t, "m2", 200, past, 200, past)
	joao := row(t, "j1", 150, future, installment.StatusPendente)
	joao.ClientID = "client-2"
	joao.ClientName = "João"
	joao.SaleID = "sale-j"

	svc := NewService(repoFor([]*InstallmentRow{maria1, maria2, joao}))

	stats, err := svc.TopClients(ctx, 1, 10)
	if err != nil {
		t.Fatalf("TopClients failed: %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("got %d clients, want 2", len(stats))
	}

	// Maria billed 400 total, ranked first.
	if stats[0].ClientName != "Maria" {
		t.Errorf("top client = %s, want Maria", stats[0].ClientName)
	}
	if !stats[0].TotalBilled.Equal(mustMoney(t, 400)) {
		t.Errorf("Maria TotalBilled = %s, want 400.00", stats[0].TotalBilled)
	}
	if !stats[0].TotalPaid.Equal(mustMoney(t, 200)) {
		t.Errorf("Maria TotalPaid = %s, want 200.00", stats[0].TotalPaid)
	}
	if !stats[0].HasOverdue {
		t.Error("Maria should be flagged overdue (unpaid past-due installment)")
	}
	if stats[0].SalesCount != 2 {
		t.Errorf("Maria SalesCount = %d, want 2", stats[0].SalesCount)
	}

	if stats[1].HasOverdue {
		t.Error("João has only a future installment, must not be flagged overdue")
	}

	// Limit truncates the ranking.
	stats, err = svc.TopClients(ctx, 1, 1)
	if err != nil {
		t.Fatalf("TopClients with limit failed: %v", err)
	}
	if len(stats) != 1 || stats[0].ClientName != "Maria" {
		t.Errorf("limit 1 should keep only Maria, got %d entries", len(stats))
	}
}

func TestPaymentStatusDistribution(t *testing.T) {
	ctx := context.Background()
	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	rows := []*InstallmentRow{
		row(t, "a", 100, due, installment.StatusPendente),
		row(t, "b", 100, due, installment.StatusPendente),
		row(t, "c", 100, due, installment.StatusPago),
		row(t, "d", 100, due, installment.StatusAtrasado),
	}

	svc := NewService(repoFor(rows))

	dist, err := svc.PaymentStatusDistribution(ctx, 1)
	if err != nil {
		t.Fatalf("PaymentStatusDistribution failed: %v", err)
	}

	byStatus := make(map[installment.Status]*StatusBucket)
	for _, b := range dist {
		byStatus[b.Status] = b
	}

	if b := byStatus[installment.StatusPendente]; b.Count != 2 || b.Percentage != 50 {
		t.Errorf("PENDENTE bucket = %d (%v%%), want 2 (50%%)", b.Count, b.Percentage)
	}
	if b := byStatus[installment.StatusPago]; b.Count != 1 || b.Percentage != 25 {
		t.Errorf("PAGO bucket = %d (%v%%), want 1 (25%%)", b.Count, b.Percentage)
	}
	if b := byStatus[installment.StatusAtrasado]; !b.Amount.Equal(mustMoney(t, 100)) {
		t.Errorf("ATRASADO amount = %s, want 100.00", b.Amount)
	}
}

func TestPaymentStatusDistribution_EmptyBook(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repoFor(nil))

	dist, err := svc.PaymentStatusDistribution(ctx, 1)
	if err != nil {
		t.Fatalf("PaymentStatusDistribution failed: %v", err)
	}
	for _, b := range dist {
		if b.Percentage != 0 {
			t.Errorf("%s percentage = %v, want 0 on empty book", b.Status, b.Percentage)
		}
	}
}
