package installment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"crediario/internal/shared/calendar"
	"crediario/internal/shared/money"
)

// ScheduleParams are the sale terms the generator slices into installments.
type ScheduleParams struct {
	SaleID       string
	TotalValue   money.Money
	Count        int
	Frequency    Frequency
	FirstDueDate time.Time
}

// GenerateSchedule turns a sale's terms into its ordered installment list,
// numbered 1..Count, all dated on or after FirstDueDate.
//
// Every installment carries the same rounded amount TotalValue/Count. The
// rounding remainder is deliberately NOT redistributed onto the last
// installment, so the sum of amounts can differ from the total by up to
// (Count-1) cents. Existing books were written this way; changing it
// would break parity with them.
func GenerateSchedule(params ScheduleParams) ([]*Installment, error) {
	if params.SaleID == "" {
		return nil, errors.New("sale ID is required")
	}
	if params.Count < 1 || params.Count > 24 {
		return nil, ErrInvalidInstallments
	}
	if !IsValidFrequency(params.Frequency) {
		return nil, ErrInvalidFrequency
	}
	if params.FirstDueDate.IsZero() {
		return nil, errors.New("first due date is required")
	}

	amount, err := params.TotalValue.Divide(int64(params.Count))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	installments := make([]*Installment, 0, params.Count)
	for n := 1; n <= params.Count; n++ {
		var dueDate time.Time
		switch params.Frequency {
		case FrequencyMonthly:
			dueDate = calendar.AddMonthsClamped(params.FirstDueDate, n-1)
		case FrequencyBiweekly:
			dueDate = calendar.BiweeklyStep(params.FirstDueDate, n-1)
		}

		installments = append(installments, &Installment{
			ID:        uuid.NewString(),
			SaleID:    params.SaleID,
			Number:    n,
			Amount:    amount,
			DueDate:   dueDate,
			Status:    StatusPendente,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return installments, nil
}
