package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pharmatrack/p/internal/domain"
)

// SaleStore persists the sales collection. Sales are append-only: there is no
// update or delete method here on purpose.
type SaleStore struct {
	db *sqlx.DB
}

func NewSaleStore(db *sqlx.DB) *SaleStore {
	return &SaleStore{db: db}
}

// Insert writes the sale and its ordered line items as one logical document
// (a single transaction against the store).
func (s *SaleStore) Insert(ctx context.Context, sale *domain.Sale) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sales (id, customer_id, customer_name, subtotal, discount_percent,
             discount_amount, tax_percent, tax_amount, total_amount, payment_method, sale_date)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.CustomerID, sale.CustomerName, sale.Subtotal, sale.DiscountPercent,
		sale.DiscountAmount, sale.TaxPercent, sale.TaxAmount, sale.TotalAmount,
		sale.PaymentMethod, sale.SaleDate)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for i, item := range sale.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, position, medicine_id, medicine_name,
                 quantity, unit_price, total_price)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sale.ID, i, item.MedicineID, item.MedicineName,
			item.Quantity, item.UnitPrice, item.TotalPrice)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List returns all sales with their line items, newest first.
func (s *SaleStore) List(ctx context.Context) ([]domain.Sale, error) {
	return s.list(ctx,
		`SELECT id, customer_id, customer_name, subtotal, discount_percent, discount_amount,
             tax_percent, tax_amount, total_amount, payment_method, sale_date
         FROM sales ORDER BY sale_date DESC LIMIT ?`, listCap)
}

// ListBetween returns sales whose sale_date falls within [from, to). Bounds
// are RFC3339 UTC strings, which compare lexicographically.
func (s *SaleStore) ListBetween(ctx context.Context, from, to string) ([]domain.Sale, error) {
	return s.list(ctx,
		`SELECT id, customer_id, customer_name, subtotal, discount_percent, discount_amount,
             tax_percent, tax_amount, total_amount, payment_method, sale_date
         FROM sales WHERE sale_date >= ? AND sale_date < ? ORDER BY sale_date DESC LIMIT ?`,
		from, to, listCap)
}

func (s *SaleStore) list(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	if err := s.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]string, len(sales))
	for i, sale := range sales {
		ids[i] = sale.ID
	}
	itemsQuery, itemsArgs, err := sqlx.In(
		`SELECT sale_id, position, medicine_id, medicine_name, quantity, unit_price, total_price
         FROM sale_items WHERE sale_id IN (?) ORDER BY sale_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("prepare sale items query: %w", err)
	}

	var rows []struct {
		SaleID   string `db:"sale_id"`
		Position int    `db:"position"`
		domain.SaleItem
	}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(itemsQuery), itemsArgs...); err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}

	itemsBySale := make(map[string][]domain.SaleItem, len(sales))
	for _, row := range rows {
		itemsBySale[row.SaleID] = append(itemsBySale[row.SaleID], row.SaleItem)
	}
	for i := range sales {
		items := itemsBySale[sales[i].ID]
		if items == nil {
			items = []domain.SaleItem{}
		}
		sales[i].Items = items
	}
	return sales, nil
}
