package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crediario/internal/domain/installment"
	"crediario/internal/domain/sale"
	"crediario/internal/shared/money"
)

func testInstallment(saleID string, amount money.Money) *installment.Installment {
	return &installment.Installment{
		ID:      "inst-1",
		SaleID:  saleID,
		Number:  1,
		Amount:  amount,
		DueDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Status:  installment.StatusPendente,
	}
}

func TestHandlePayInstallment(t *testing.T) {
	tests := []struct {
		name           string
		ownerID        int64
		path           string
		body           string
		status         installment.Status
		expectedStatus int
	}{
		{
			name:           "Success",
			ownerID:        1,
			path:           "/api/installments/inst-1/pay",
			body:           `{"amount":100.00,"paidDate":"2024-02-08"}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AlreadyPaid",
			ownerID:        1,
			path:           "/api/installments/inst-1/pay",
			body:           `{"amount":100.00}`,
			status:         installment.StatusPago,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "NotFound",
			ownerID:        1,
			path:           "/api/installments/missing/pay",
			body:           `{"amount":100.00}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "WrongOwner",
			ownerID:        2,
			path:           "/api/installments/inst-1/pay",
			body:           `{"amount":100.00}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "ZeroAmount",
			ownerID:        1,
			path:           "/api/installments/inst-1/pay",
			body:           `{"amount":0}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "NegativeAmount",
			ownerID:        1,
			path:           "/api/installments/inst-1/pay",
			body:           `{"amount":-50}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "BadPath",
			ownerID:        1,
			path:           "/api/installments/inst-1/refund",
			body:           `{"amount":100.00}`,
			status:         installment.StatusPendente,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := testSale(1)
			stored.TotalValue = mustMoney(t, "300.00")
			stored.TotalPaid = money.Zero()

			inst := testInstallment(stored.ID, mustMoney(t, "100.00"))
			inst.Status = tt.status

			installmentRepo := &MockInstallmentRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*installment.Installment, error) {
					if id == inst.ID {
						return inst, nil
					}
					return nil, nil
				},
			}
			saleRepo := &MockSaleRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*sale.Sale, error) {
					return stored, nil
				},
			}
			saleService := sale.NewService(saleRepo, installmentRepo, &MockClientRepo{})
			handler := NewInstallmentHandler(saleService, installment.NewService(installmentRepo))

			req := requestWithOwner(http.MethodPost, tt.path, []byte(tt.body), tt.ownerID)
			rr := httptest.NewRecorder()

			handler.HandlePayInstallment(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var paid installment.Installment
				if err := json.NewDecoder(rr.Body).Decode(&paid); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if paid.Status != installment.StatusPago {
					t.Errorf("expected status PAGO, got %s", paid.Status)
				}
			}
		})
	}
}

func TestHandleOverdueInstallments(t *testing.T) {
	now := time.Now()
	overdue := testInstallment("sale-1", mustMoney(t, "100.00"))
	overdue.DueDate = now.AddDate(0, 0, -10)

	var updated int
	installmentRepo := &MockInstallmentRepo{
		ListOverdueFunc: func(ctx context.Context, ownerID int64, now time.Time) ([]*installment.Installment, error) {
			return []*installment.Installment{overdue}, nil
		},
		UpdateFunc: func(ctx context.Context, inst *installment.Installment) error {
			updated++
			return nil
		},
	}
	saleService := sale.NewService(&MockSaleRepo{}, installmentRepo, &MockClientRepo{})
	handler := NewInstallmentHandler(saleService, installment.NewService(installmentRepo))

	req := requestWithOwner(http.MethodGet, "/api/installments/overdue", nil, 1)
	rr := httptest.NewRecorder()

	handler.HandleOverdueInstallments(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result []*installment.Installment
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 overdue installment, got %d", len(result))
	}
	if result[0].Status != installment.StatusAtrasado {
		t.Errorf("expected status ATRASADO, got %s", result[0].Status)
	}
	if updated != 1 {
		t.Errorf("expected 1 persisted status update, got %d", updated)
	}
}

func TestHandleUpcomingInstallments(t *testing.T) {
	var gotStart, gotEnd time.Time
	installmentRepo := &MockInstallmentRepo{
		ListByDueDateRangeFunc: func(ctx context.Context, ownerID int64, start, end time.Time) ([]*installment.Installment, error) {
			gotStart, gotEnd = start, end
			return []*installment.Installment{}, nil
		},
	}
	saleService := sale.NewService(&MockSaleRepo{}, installmentRepo, &MockClientRepo{})
	handler := NewInstallmentHandler(saleService, installment.NewService(installmentRepo))

	t.Run("CustomDays", func(t *testing.T) {
		req := requestWithOwner(http.MethodGet, "/api/installments/upcoming?days=7", nil, 1)
		rr := httptest.NewRecorder()

		handler.HandleUpcomingInstallments(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if !gotEnd.Equal(gotStart.AddDate(0, 0, 7)) {
			t.Errorf("expected 7 day horizon, got %s to %s", gotStart, gotEnd)
		}
	})

	t.Run("InvalidDays", func(t *testing.T) {
		req := requestWithOwner(http.MethodGet, "/api/installments/upcoming?days=zero", nil, 1)
		rr := httptest.NewRecorder()

		handler.HandleUpcomingInstallments(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})
}
