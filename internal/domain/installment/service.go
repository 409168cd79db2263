package installment

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultUpcomingDays is the horizon for the upcoming-installments listing.
const DefaultUpcomingDays = 30

// Service contains installment read-side operations: the overdue sweep
// and the upcoming listing. Payments go through the sale service, which
// owns the cross-aggregate propagation.
type Service struct {
	repo Repository
}

// NewService creates a new installment service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SweepOverdue reclassifies every past-due unpaid installment of the
// owner to ATRASADO and returns the swept set. The sweep is idempotent:
// installments already ATRASADO are returned unchanged and not rewritten,
// so repeated calls settle on the same status set with no extra writes.
func (s *Service) SweepOverdue(ctx context.Context, ownerID int64) ([]*Installment, error) {
	now := time.Now()

	overdue, err := s.repo.ListOverdue(ctx, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue installments: %w", err)
	}

	reclassified := 0
	for _, inst := range overdue {
		if !inst.MarkOverdue(now) {
			continue
		}
		if err := s.repo.Update(ctx, inst); err != nil {
			return nil, fmt.Errorf("failed to persist overdue installment %s: %w", inst.ID, err)
		}
		reclassified++
	}

	if reclassified > 0 {
		log.Printf("Overdue sweep for owner %d: %d installments checked, %d reclassified", ownerID, len(overdue), reclassified)
	}

	return overdue, nil
}

// ListUpcoming returns unpaid installments due within the next `days`
// days, starting now. A non-positive horizon falls back to the default.
func (s *Service) ListUpcoming(ctx context.Context, ownerID int64, days int) ([]*Installment, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}

	now := time.Now()
	return s.repo.ListByDueDateRange(ctx, ownerID, now, now.AddDate(0, 0, days))
}

// ListBySale returns the ordered installment list of one sale.
func (s *Service) ListBySale(ctx context.Context, saleID string) ([]*Installment, error) {
	return s.repo.ListBySaleID(ctx, saleID)
}
