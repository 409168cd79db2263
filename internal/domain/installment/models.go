package installment

import (
	"errors"
	"time"

	"crediario/internal/shared/money"
)

// Status is the payment status of an installment.
type Status string

const (
	StatusPendente Status = "PENDENTE"
	StatusPago     Status = "PAGO"
	StatusAtrasado Status = "ATRASADO"
)

// IsValidStatus checks if the provided status is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPendente, StatusPago, StatusAtrasado:
		return true
	}
	return false
}

// Frequency is the cadence of an installment schedule.
type Frequency string

const (
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
)

// IsValidFrequency checks if the provided frequency is valid.
func IsValidFrequency(f Frequency) bool {
	return f == FrequencyMonthly || f == FrequencyBiweekly
}

// Domain errors
var (
	ErrInstallmentNotFound  = errors.New("installment not found")
	ErrAlreadyPaid          = errors.New("installment already paid")
	ErrInvalidInstallments  = errors.New("installment count must be between 1 and 24")
	ErrInvalidFrequency     = errors.New("invalid payment frequency")
)

// Installment is one scheduled payment obligation of a sale. Its amount
// is fixed at scheduling time and never recomputed; status, paid date and
// paid amount are the only mutable business fields.
type Installment struct {
	ID         string       `json:"id"`
	SaleID     string       `json:"saleId"`
	Number     int          `json:"number"` // 1-based, sequential per sale
	Amount     money.Money  `json:"amount"`
	DueDate    time.Time    `json:"dueDate"`
	Status     Status       `json:"status"`
	PaidDate   *time.Time   `json:"paidDate,omitempty"`
	PaidAmount *money.Money `json:"paidAmount,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// IsOverdue reports whether the installment is past due and not paid off.
func (i *Installment) IsOverdue(now time.Time) bool {
	return i.DueDate.Before(now) && i.Status != StatusPago
}

// MarkPaid records a payment against the installment. An amount below the
// nominal value is a partial payment: it is recorded but never yields
// PAGO; the status stays PENDENTE, or becomes ATRASADO when already past
// due. An amount at or above the nominal value settles the installment
// regardless of the due date. Paying an installment that is already PAGO
// fails with ErrAlreadyPaid; this is the single enforcement point.
func (i *Installment) MarkPaid(amount money.Money, paidDate time.Time, now time.Time) error {
	if i.Status == StatusPago {
		return ErrAlreadyPaid
	}

	if paidDate.IsZero() {
		paidDate = now
	}

	i.PaidAmount = &amount
	i.PaidDate = &paidDate

	if amount.LessThan(i.Amount) {
		if i.IsOverdue(now) {
			i.Status = StatusAtrasado
		} else {
			i.Status = StatusPendente
		}
	} else {
		i.Status = StatusPago
	}

	i.UpdatedAt = now
	return nil
}

// MarkOverdue transitions a past-due PENDENTE installment to ATRASADO.
// Idempotent: any other state is left untouched. Returns true when the
// status actually changed so callers know whether to persist.
func (i *Installment) MarkOverdue(now time.Time) bool {
	if i.Status != StatusPendente || !i.IsOverdue(now) {
		return false
	}
	i.Status = StatusAtrasado
	i.UpdatedAt = now
	return true
}
