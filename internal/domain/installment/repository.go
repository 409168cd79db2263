package installment

import (
	"context"
	"time"

	"crediario/internal/shared/money"
)

// Repository defines the interface for installment data access. All listing
// methods are scoped to the sales of a single owner.
type Repository interface {
	Create(ctx context.Context, inst *Installment) error

	// CreateMany persists a generated schedule as one atomic batch:
	// either every installment is stored or none is.
	CreateMany(ctx context.Context, installments []*Installment) error

	GetByID(ctx context.Context, id string) (*Installment, error)
	ListBySaleID(ctx context.Context, saleID string) ([]*Installment, error)

	// ListOverdue returns installments with status PENDENTE or ATRASADO
	// whose due date is strictly before now.
	ListOverdue(ctx context.Context, ownerID int64, now time.Time) ([]*Installment, error)

	// ListByDueDateRange returns unpaid installments (status != PAGO)
	// due within [start, end].
	ListByDueDateRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*Installment, error)

	Update(ctx context.Context, inst *Installment) error
	Delete(ctx context.Context, id string) error
	DeleteBySaleID(ctx context.Context, saleID string) error

	// ApplyPayment persists the mutated installment together with the
	// owning sale's new running total in a single transaction, so the
	// denormalized totalPaid counter cannot drift from the installment
	// set under concurrent payments.
	ApplyPayment(ctx context.Context, inst *Installment, saleID string, saleTotalPaid money.Money) error
}
