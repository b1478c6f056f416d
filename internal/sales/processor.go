// Package sales turns caller-supplied sale requests into persisted,
// internally consistent Sale records and applies their inventory effects.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pharmatrack/p/internal/domain"
)

const defaultPaymentMethod = "cash"

// SaleItemRequest is one requested line. Prices and the medicine name are
// supplied by the caller as a denormalized snapshot; the processor does not
// re-derive them from the catalog.
type SaleItemRequest struct {
	MedicineID   string  `json:"medicine_id" validate:"required"`
	MedicineName string  `json:"medicine_name" validate:"required"`
	Quantity     int64   `json:"quantity" validate:"gt=0"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
	TotalPrice   float64 `json:"total_price" validate:"gte=0"`
}

// CreateSaleRequest is the POST /api/sales payload. The customer reference is
// optional: walk-in sales carry only a free-text name, or nothing at all.
type CreateSaleRequest struct {
	CustomerID      *string           `json:"customer_id,omitempty"`
	CustomerName    *string           `json:"customer_name,omitempty"`
	Items           []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64           `json:"subtotal" validate:"gte=0"`
	DiscountPercent float64           `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxPercent      float64           `json:"tax_percent" validate:"gte=0"`
	PaymentMethod   string            `json:"payment_method"`
}

// StockLedger decrements stock for one line item.
type StockLedger interface {
	ReserveAndDecrement(ctx context.Context, medicineID string, quantity int64) error
}

// SaleWriter persists a finished sale record.
type SaleWriter interface {
	Insert(ctx context.Context, sale *domain.Sale) error
}

// MedicineNotFoundError reports which line item's medicine was missing when
// a sale was aborted.
type MedicineNotFoundError struct {
	MedicineID   string
	MedicineName string
}

func (e *MedicineNotFoundError) Error() string {
	return fmt.Sprintf("Medicine %s not found", e.MedicineName)
}

func (e *MedicineNotFoundError) Unwrap() error { return domain.ErrNotFound }

// Processor is the sale transaction processor.
type Processor struct {
	ledger   StockLedger
	sales    SaleWriter
	validate *validator.Validate
	now      func() time.Time
}

func NewProcessor(ledger StockLedger, sales SaleWriter) *Processor {
	return &Processor{
		ledger:   ledger,
		sales:    sales,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// ProcessSale validates the request, computes the monetary totals, decrements
// stock for each line item in request order, and persists the resulting sale.
//
// The store offers no multi-document transaction, so a NotFound partway
// through the item list leaves the earlier decrements in place with no sale
// record; the error names the medicine that was missing. Validation failures
// are rejected before any stock is touched.
func (p *Processor) ProcessSale(ctx context.Context, req CreateSaleRequest) (*domain.Sale, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	discountAmount := req.Subtotal * req.DiscountPercent / 100
	taxableAmount := req.Subtotal - discountAmount
	taxAmount := taxableAmount * req.TaxPercent / 100
	totalAmount := taxableAmount + taxAmount

	for _, item := range req.Items {
		err := p.ledger.ReserveAndDecrement(ctx, item.MedicineID, item.Quantity)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &MedicineNotFoundError{MedicineID: item.MedicineID, MedicineName: item.MedicineName}
		}
		if err != nil {
			return nil, fmt.Errorf("decrement stock for %s: %w", item.MedicineName, err)
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	items := make([]domain.SaleItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.SaleItem{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
		}
	}

	sale := &domain.Sale{
		ID:              uuid.NewString(),
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		Items:           items,
		Subtotal:        req.Subtotal,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  discountAmount,
		TaxPercent:      req.TaxPercent,
		TaxAmount:       taxAmount,
		TotalAmount:     totalAmount,
		PaymentMethod:   paymentMethod,
		SaleDate:        p.now().UTC().Format(time.RFC3339),
	}
	if err := p.sales.Insert(ctx, sale); err != nil {
		return nil, fmt.Errorf("persist sale: %w", err)
	}
	return sale, nil
}
