package scheduler

import (
	"context"
	"fmt"
	"log"

	"crediario/internal/domain/installment"
	"crediario/internal/domain/sale"
)

// SweepJob reclassifies an owner's past-due installments to ATRASADO.
// It implements the Job interface.
type SweepJob struct {
	ownerID      int64
	installments *installment.Service
}

// NewSweepJob creates a sweep job for one owner's book.
func NewSweepJob(ownerID int64, installments *installment.Service) *SweepJob {
	return &SweepJob{
		ownerID:      ownerID,
		installments: installments,
	}
}

func (j *SweepJob) Execute(ctx context.Context) error {
	swept, err := j.installments.SweepOverdue(ctx, j.ownerID)
	if err != nil {
		return fmt.Errorf("overdue sweep failed for owner %d: %w", j.ownerID, err)
	}

	log.Printf("SweepJob: owner %d has %d overdue installments", j.ownerID, len(swept))
	return nil
}

func (j *SweepJob) OwnerID() int64 {
	return j.ownerID
}

func (j *SweepJob) Description() string {
	return "overdue installment sweep"
}

// NewSweepJobProvider returns a job provider that fans the sweep out to
// every owner with at least one sale on the books.
func NewSweepJobProvider(sales sale.Repository, installments *installment.Service) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		ownerIDs, err := sales.ListOwnerIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list owners for sweep: %w", err)
		}

		jobs := make([]Job, 0, len(ownerIDs))
		for _, ownerID := range ownerIDs {
			jobs = append(jobs, NewSweepJob(ownerID, installments))
		}
		return jobs, nil
	}
}
