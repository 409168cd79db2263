package http

import (
	"context"
	"time"

	"crediario/internal/domain/client"
	"crediario/internal/domain/installment"
	"crediario/internal/domain/sale"
	"crediario/internal/shared/money"
)

// MockSaleRepo implements sale.Repository for testing
type MockSaleRepo struct {
	CreateFunc        func(ctx context.Context, s *sale.Sale) error
	GetByIDFunc       func(ctx context.Context, id string) (*sale.Sale, error)
	ListByOwnerIDFunc func(ctx context.Context, ownerID int64) ([]*sale.Sale, error)
	UpdateFunc        func(ctx context.Context, s *sale.Sale) error
	DeleteFunc        func(ctx context.Context, id string) error
	ListOwnerIDsFunc  func(ctx context.Context) ([]int64, error)
}

func (m *MockSaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *MockSaleRepo) GetByID(ctx context.Context, id string) (*sale.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSaleRepo) ListByOwnerID(ctx context.Context, ownerID int64) ([]*sale.Sale, error) {
	if m.ListByOwnerIDFunc != nil {
		return m.ListByOwnerIDFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockSaleRepo) Update(ctx context.Context, s *sale.Sale) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *MockSaleRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSaleRepo) ListOwnerIDs(ctx context.Context) ([]int64, error) {
	if m.ListOwnerIDsFunc != nil {
		return m.ListOwnerIDsFunc(ctx)
	}
	return nil, nil
}

// MockInstallmentRepo implements installment.Repository for testing
type MockInstallmentRepo struct {
	CreateFunc             func(ctx context.Context, inst *installment.Installment) error
	CreateManyFunc         func(ctx context.Context, installments []*installment.Installment) error
	GetByIDFunc            func(ctx context.Context, id string) (*installment.Installment, error)
	ListBySaleIDFunc       func(ctx context.Context, saleID string) ([]*installment.Installment, error)
	ListOverdueFunc        func(ctx context.Context, ownerID int64, now time.Time) ([]*installment.Installment, error)
	ListByDueDateRangeFunc func(ctx context.Context, ownerID int64, start, end time.Time) ([]*installment.Installment, error)
	UpdateFunc             func(ctx context.Context, inst *installment.Installment) error
	DeleteFunc             func(ctx context.Context, id string) error
	DeleteBySaleIDFunc     func(ctx context.Context, saleID string) error
	ApplyPaymentFunc       func(ctx context.Context, inst *installment.Installment, saleID string, saleTotalPaid money.Money) error
}

func (m *MockInstallmentRepo) Create(ctx context.Context, inst *installment.Installment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inst)
	}
	return nil
}

func (m *MockInstallmentRepo) CreateMany(ctx context.Context, installments []*installment.Installment) error {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, installments)
	}
	return nil
}

func (m *MockInstallmentRepo) GetByID(ctx context.Context, id string) (*installment.Installment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInstallmentRepo) ListBySaleID(ctx context.Context, saleID string) ([]*installment.Installment, error) {
	if m.ListBySaleIDFunc != nil {
		return m.ListBySaleIDFunc(ctx, saleID)
	}
	return nil, nil
}

func (m *MockInstallmentRepo) ListOverdue(ctx context.Context, ownerID int64, now time.Time) ([]*installment.Installment, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, ownerID, now)
	}
	return nil, nil
}

func (m *MockInstallmentRepo) ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*installment.Installment, error) {
	if m.ListByDueDateRangeFunc != nil {
		return m.ListByDueDateRangeFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

func (m *MockInstallmentRepo) Update(ctx context.Context, inst *installment.Installment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inst)
	}
	return nil
}

func (m *MockInstallmentRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockInstallmentRepo) DeleteBySaleID(ctx context.Context, saleID string) error {
	if m.DeleteBySaleIDFunc != nil {
		return m.DeleteBySaleIDFunc(ctx, saleID)
	}
	return nil
}

func (m *MockInstallmentRepo) ApplyPayment(ctx context.Context, inst *installment.Installment, saleID string, saleTotalPaid money.Money) error {
	if m.ApplyPaymentFunc != nil {
		return m.ApplyPaymentFunc(ctx, inst, saleID, saleTotalPaid)
	}
	return nil
}

// MockClientRepo implements client.Repository for testing
type MockClientRepo struct {
	CreateFunc        func(ctx context.Context, params client.CreateParams) (*client.Client, error)
	GetByIDFunc       func(ctx context.Context, id string) (*client.Client, error)
	ListByOwnerIDFunc func(ctx context.Context, ownerID int64) ([]*client.Client, error)
	ExistsFunc        func(ctx context.Context, id string) (bool, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *MockClientRepo) Create(ctx context.Context, params client.CreateParams) (*client.Client, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockClientRepo) GetByID(ctx context.Context, id string) (*client.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClientRepo) ListByOwnerID(ctx context.Context, ownerID int64) ([]*client.Client, error) {
	if m.ListByOwnerIDFunc != nil {
		return m.ListByOwnerIDFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockClientRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockClientRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
