package installment

import (
	"context"
	"testing"
	"time"

	"crediario/internal/shared/money"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc             func(ctx context.Context, inst *Installment) error
	CreateManyFunc         func(ctx context.Context, installments []*Installment) error
	GetByIDFunc            func(ctx context.Context, id string) (*Installment, error)
	ListBySaleIDFunc       func(ctx context.Context, saleID string) ([]*Installment, error)
	ListOverdueFunc        func(ctx context.Context, ownerID int64, now time.Time) ([]*Installment, error)
	ListByDueDateRangeFunc func(ctx context.Context, ownerID int64, start, end time.Time) ([]*Installment, error)
	UpdateFunc             func(ctx context.Context, inst *Installment) error
	DeleteFunc             func(ctx context.Context, id string) error
	DeleteBySaleIDFunc     func(ctx context.Context, saleID string) error
	ApplyPaymentFunc       func(ctx context.Context, inst *Installment, saleID string, saleTotalPaid money.Money) error
}

func (m *MockRepository) Create(ctx context.Context, inst *Installment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inst)
	}
	return nil
}

func (m *MockRepository) CreateMany(ctx context.Context, installments []*Installment) error {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, installments)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) ListBySaleID(ctx context.Context, saleID string) ([]*Installment, error) {
	if m.ListBySaleIDFunc != nil {
		return m.ListBySaleIDFunc(ctx, saleID)
	}
	return nil, nil
}

func (m *MockRepository) ListOverdue(ctx context.Context, ownerID int64, now time.Time) ([]*Installment, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, ownerID, now)
	}
	return nil, nil
}

func (m *MockRepository) ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*Installment, error) {
	if m.ListByDueDateRangeFunc != nil {
		return m.ListByDueDateRangeFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, inst *Installment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inst)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) DeleteBySaleID(ctx context.Context, saleID string) error {
	if m.DeleteBySaleIDFunc != nil {
		return m.DeleteBySaleIDFunc(ctx, saleID)
	}
	return nil
}

func (m *MockRepository) ApplyPayment(ctx context.Context, inst *Installment, saleID string, saleTotalPaid money.Money) error {
	if m.ApplyPaymentFunc != nil {
		return m.ApplyPaymentFunc(ctx, inst, saleID, saleTotalPaid)
	}
	return nil
}

func TestSweepOverdue(t *testing.T) {
	ctx := context.Background()
	pastDue := time.Now().AddDate(0, 0, -5)

	pending := testInstallment(t, 100, pastDue)
	pending.ID = "inst-pending"
	alreadyMarked := testInstallment(t, 100, pastDue)
	alreadyMarked.ID = "inst-marked"
	alreadyMarked.Status = StatusAtrasado

	updates := 0
	repo := &MockRepository{
		ListOverdueFunc: func(ctx context.Context, ownerID int64, now time.Time) ([]*Installment, error) {
			return []*Installment{pending, alreadyMarked}, nil
		},
		UpdateFunc: func(ctx context.Context, inst *Installment) error {
			updates++
			return nil
		},
	}

	svc := NewService(repo)

	swept, err := svc.SweepOverdue(ctx, 1)
	if err != nil {
		t.Fatalf("SweepOverdue failed: %v", err)
	}

	if len(swept) != 2 {
		t.Errorf("swept %d installments, want 2", len(swept))
	}
	if pending.Status != StatusAtrasado {
		t.Errorf("pending installment status = %s, want ATRASADO", pending.Status)
	}
	if updates != 1 {
		t.Errorf("persisted %d updates, want 1 (only the reclassified one)", updates)
	}

	// Second sweep over the now-reclassified set writes nothing.
	updates = 0
	if _, err := svc.SweepOverdue(ctx, 1); err != nil {
		t.Fatalf("second SweepOverdue failed: %v", err)
	}
	if updates != 0 {
		t.Errorf("second sweep persisted %d updates, want 0", updates)
	}
}

func TestListUpcoming_DefaultHorizon(t *testing.T) {
	ctx := context.Background()

	var gotStart, gotEnd time.Time
	repo := &MockRepository{
		ListByDueDateRangeFunc: func(ctx context.Context, ownerID int64, start, end time.Time) ([]*Installment, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}

	svc := NewService(repo)
	if _, err := svc.ListUpcoming(ctx, 1, 0); err != nil {
		t.Fatalf("ListUpcoming failed: %v", err)
	}

	if want := gotStart.AddDate(0, 0, DefaultUpcomingDays); !gotEnd.Equal(want) {
		t.Errorf("default horizon end = %v, want %v", gotEnd, want)
	}
}
