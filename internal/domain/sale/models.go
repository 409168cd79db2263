package sale

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/domain/installment"
	"crediario/internal/shared/money"
)

// Domain errors
var (
	ErrSaleNotFound = errors.New("sale not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidValue = errors.New("sale value must be greater than zero")
)

// Installment count bounds enforced at sale creation.
const (
	MinInstallments = 1
	MaxInstallments = 24
)

// Sale is one agreement to be paid in installments. It is the ledger's
// source of truth for value and frequency; the schedule and per-payment
// status live in the installments (related by SaleID).
type Sale struct {
	ID                string                `json:"id"`
	OwnerID           int64                 `json:"ownerId"`
	ClientID          string                `json:"clientId"`
	ItemDescription   string                `json:"itemDescription"`
	TotalValue        money.Money           `json:"totalValue"`
	TotalInstallments int                   `json:"totalInstallments"`
	PaymentFrequency  installment.Frequency `json:"paymentFrequency"`
	FirstDueDate      time.Time             `json:"firstDueDate"`
	TotalPaid         money.Money           `json:"totalPaid"`
	SaleDate          time.Time             `json:"saleDate"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// AddPayment increments the running total by the amount actually paid
// (not the installment's nominal amount). Overpayment across installments
// is allowed; it surfaces as a negative remaining balance.
func (s *Sale) AddPayment(amount money.Money, now time.Time) error {
	total, err := s.TotalPaid.Add(amount)
	if err != nil {
		return err
	}
	s.TotalPaid = total
	s.UpdatedAt = now
	return nil
}

// RemovePayment decrements the running total. Removing more than was
// ever paid fails with money.ErrNegativeAmount.
func (s *Sale) RemovePayment(amount money.Money, now time.Time) error {
	total, err := s.TotalPaid.Subtract(amount)
	if err != nil {
		return err
	}
	s.TotalPaid = total
	s.UpdatedAt = now
	return nil
}

// RemainingBalance returns totalValue - totalPaid. The result is a plain
// decimal rather than a Money because overpayment makes it negative.
func (s *Sale) RemainingBalance() decimal.Decimal {
	return s.TotalValue.Decimal().Sub(s.TotalPaid.Decimal())
}

// IsFullyPaid reports whether the remaining balance is zero or below.
func (s *Sale) IsFullyPaid() bool {
	return s.RemainingBalance().LessThanOrEqual(decimal.Zero)
}

// CreateParams contains parameters for recording a new sale.
type CreateParams struct {
	OwnerID           int64
	ClientID          string
	ItemDescription   string
	TotalValue        money.Money
	TotalInstallments int
	PaymentFrequency  installment.Frequency
	FirstDueDate      time.Time
	SaleDate          time.Time // zero means "now"
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.OwnerID <= 0 {
		return errors.New("valid owner ID is required")
	}
	if p.ClientID == "" {
		return errors.New("client ID is required")
	}
	if strings.TrimSpace(p.ItemDescription) == "" {
		return errors.New("item description is required")
	}
	if !p.TotalValue.IsPositive() {
		return ErrInvalidValue
	}
	if p.TotalInstallments < MinInstallments || p.TotalInstallments > MaxInstallments {
		return installment.ErrInvalidInstallments
	}
	if !installment.IsValidFrequency(p.PaymentFrequency) {
		return installment.ErrInvalidFrequency
	}
	if p.FirstDueDate.IsZero() {
		return errors.New("first due date is required")
	}
	return nil
}
