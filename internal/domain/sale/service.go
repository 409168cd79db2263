package sale

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"crediario/internal/domain/client"
	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

// Service contains the business logic for the sale aggregate: recording
// a sale (which generates its installment schedule), applying payments,
// and deleting a sale with its installment cascade.
type Service struct {
	sales        Repository
	installments installment.Repository
	clients      client.Repository
}

// NewService creates a new sale service.
func NewService(sales Repository, installments installment.Repository, clients client.Repository) *Service {
	return &Service{
		sales:        sales,
		installments: installments,
		clients:      clients,
	}
}

// CreateSale records a sale and generates its installment schedule. The
// schedule is persisted as an atomic batch; the installments are returned
// in ascending number order.
func (s *Service) CreateSale(ctx context.Context, params CreateParams) (*Sale, []*installment.Installment, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	exists, err := s.clients.Exists(ctx, params.ClientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return nil, nil, client.ErrClientNotFound
	}

	now := time.Now()
	saleDate := params.SaleDate
	if saleDate.IsZero() {
		saleDate = now
	}

	newSale := &Sale{
		ID:                uuid.NewString(),
		OwnerID:           params.OwnerID,
		ClientID:          params.ClientID,
		ItemDescription:   params.ItemDescription,
		TotalValue:        params.TotalValue,
		TotalInstallments: params.TotalInstallments,
		PaymentFrequency:  params.PaymentFrequency,
		FirstDueDate:      params.FirstDueDate,
		TotalPaid:         money.Zero(),
		SaleDate:          saleDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	installments, err := installment.GenerateSchedule(installment.ScheduleParams{
		SaleID:       newSale.ID,
		TotalValue:   newSale.TotalValue,
		Count:        newSale.TotalInstallments,
		Frequency:    newSale.PaymentFrequency,
		FirstDueDate: newSale.FirstDueDate,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.sales.Create(ctx, newSale); err != nil {
		return nil, nil, fmt.Errorf("failed to create sale: %w", err)
	}
	if err := s.installments.CreateMany(ctx, installments); err != nil {
		return nil, nil, fmt.Errorf("failed to create installments: %w", err)
	}

	log.Printf("Sale %s created for client %s: %s in %d %s installments",
		newSale.ID, newSale.ClientID, newSale.TotalValue, newSale.TotalInstallments, newSale.PaymentFrequency)

	return newSale, installments, nil
}

// GetSale retrieves a sale by ID and verifies owner scoping.
func (s *Service) GetSale(ctx context.Context, saleID string, ownerID int64) (*Sale, error) {
	found, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrSaleNotFound
	}
	if found.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return found, nil
}

// ListSales returns all sales of an owner.
func (s *Service) ListSales(ctx context.Context, ownerID int64) ([]*Sale, error) {
	return s.sales.ListByOwnerID(ctx, ownerID)
}

// PayInstallment applies a payment to an installment and propagates the
// paid amount to the owning sale's running total. The installment update
// and the sale's new total are persisted in one transaction via the
// repository, so a lost update cannot leave the two out of step.
func (s *Service) PayInstallment(ctx context.Context, ownerID int64, installmentID string, amount money.Money, paidDate time.Time) (*installment.Installment, error) {
	inst, err := s.installments.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, installment.ErrInstallmentNotFound
	}

	owningSale, err := s.GetSale(ctx, inst.SaleID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := inst.MarkPaid(amount, paidDate, now); err != nil {
		return nil, err
	}
	if err := owningSale.AddPayment(amount, now); err != nil {
		return nil, err
	}

	if err := s.installments.ApplyPayment(ctx, inst, owningSale.ID, owningSale.TotalPaid); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	log.Printf("Installment %s (sale %s, #%d) paid %s, status %s",
		inst.ID, inst.SaleID, inst.Number, amount, inst.Status)

	return inst, nil
}

// DeleteSale removes a sale and cascades to its installments.
func (s *Service) DeleteSale(ctx context.Context, saleID string, ownerID int64) error {
	if _, err := s.GetSale(ctx, saleID, ownerID); err != nil {
		return err
	}

	if err := s.installments.DeleteBySaleID(ctx, saleID); err != nil {
		return fmt.Errorf("failed to delete installments: %w", err)
	}
	return s.sales.Delete(ctx, saleID)
}
