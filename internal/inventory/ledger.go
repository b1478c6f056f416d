// Package inventory owns stock-quantity mutation. Sale-driven decrements
// must go through the Ledger; nothing else besides direct administrative
// edits may touch a medicine's stock.
package inventory

import (
	"context"
	"fmt"

	"pharmatrack/p/internal/domain"
)

// StockAdjuster is the slice of the medicine store the ledger needs: an
// atomic delta update against a single medicine.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, medicineID string, delta int64) error
}

// Ledger is the sole authorized path for decrementing stock as a side effect
// of a sale.
type Ledger struct {
	medicines StockAdjuster
}

func NewLedger(medicines StockAdjuster) *Ledger {
	return &Ledger{medicines: medicines}
}

// ReserveAndDecrement atomically decrements the medicine's stock by quantity.
// The resulting stock is allowed to go negative; the minimum stock level is a
// reporting threshold, never a hard floor. Returns ErrNotFound when the
// medicine does not exist at the time of the update.
func (l *Ledger) ReserveAndDecrement(ctx context.Context, medicineID string, quantity int64) error {
	if medicineID == "" {
		return fmt.Errorf("%w: medicine id is required", domain.ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if err := l.medicines.AdjustStock(ctx, medicineID, -quantity); err != nil {
		return err
	}
	return nil
}
