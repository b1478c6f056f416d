package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pharmatrack/p/internal/domain"
)

const medicineColumns = `id, name, generic_name, manufacturer, category, dosage, form,
        batch_number, expiry_date, purchase_price, selling_price,
        stock_quantity, min_stock_level, created_at, updated_at`

// MedicineStore persists the medicines collection.
type MedicineStore struct {
	db *sqlx.DB
}

func NewMedicineStore(db *sqlx.DB) *MedicineStore {
	return &MedicineStore{db: db}
}

// Insert stores a new medicine, assigning an id and timestamps when unset.
func (s *MedicineStore) Insert(ctx context.Context, m *domain.Medicine) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := nowUTC()
	if m.CreatedAt == "" {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `INSERT INTO medicines (`+medicineColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.GenericName, m.Manufacturer, m.Category, m.Dosage, m.Form,
		m.BatchNumber, m.ExpiryDate, m.PurchasePrice, m.SellingPrice,
		m.StockQuantity, m.MinStockLevel, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

func (s *MedicineStore) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	var m domain.Medicine
	err := s.db.GetContext(ctx, &m, `SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return &m, nil
}

func (s *MedicineStore) List(ctx context.Context) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT `+medicineColumns+` FROM medicines ORDER BY name LIMIT ?`, listCap)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

// Update applies the non-nil fields of the patch. It reports ErrNotFound when
// no medicine matched the id.
func (s *MedicineStore) Update(ctx context.Context, id string, patch domain.MedicinePatch) error {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.GenericName != nil {
		add("generic_name", *patch.GenericName)
	}
	if patch.Manufacturer != nil {
		add("manufacturer", *patch.Manufacturer)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Dosage != nil {
		add("dosage", *patch.Dosage)
	}
	if patch.Form != nil {
		add("form", *patch.Form)
	}
	if patch.BatchNumber != nil {
		add("batch_number", *patch.BatchNumber)
	}
	if patch.ExpiryDate != nil {
		add("expiry_date", *patch.ExpiryDate)
	}
	if patch.PurchasePrice != nil {
		add("purchase_price", *patch.PurchasePrice)
	}
	if patch.SellingPrice != nil {
		add("selling_price", *patch.SellingPrice)
	}
	if patch.StockQuantity != nil {
		add("stock_quantity", *patch.StockQuantity)
	}
	if patch.MinStockLevel != nil {
		add("min_stock_level", *patch.MinStockLevel)
	}
	add("updated_at", nowUTC())

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE medicines SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	if matched == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MedicineStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MedicineStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM medicines`); err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	return count, nil
}

// AdjustStock applies an atomic delta to stock_quantity in a single
// conditional update, never read-modify-write, so concurrent sales against
// the same medicine cannot lose updates. It reports ErrNotFound when no
// medicine matched.
func (s *MedicineStore) AdjustStock(ctx context.Context, id string, delta int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE medicines SET stock_quantity = stock_quantity + ?, updated_at = ? WHERE id = ?`,
		delta, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if matched == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LowStock returns medicines at or below their minimum stock level.
func (s *MedicineStore) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT `+medicineColumns+` FROM medicines
         WHERE stock_quantity <= min_stock_level ORDER BY name LIMIT ?`, listCap)
	if err != nil {
		return nil, fmt.Errorf("low-stock medicines: %w", err)
	}
	return medicines, nil
}

// ExpiredAsOf returns medicines whose expiry date is on or before the given
// day. Dates are YYYY-MM-DD strings, so the comparison is date-only.
func (s *MedicineStore) ExpiredAsOf(ctx context.Context, day string) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT `+medicineColumns+` FROM medicines
         WHERE expiry_date <= ? ORDER BY expiry_date LIMIT ?`, day, listCap)
	if err != nil {
		return nil, fmt.Errorf("expired medicines: %w", err)
	}
	return medicines, nil
}

// CountExpiredAsOf mirrors ExpiredAsOf as a count.
func (s *MedicineStore) CountExpiredAsOf(ctx context.Context, day string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM medicines WHERE expiry_date <= ?`, day)
	if err != nil {
		return 0, fmt.Errorf("count expired medicines: %w", err)
	}
	return count, nil
}

// CountLowStock mirrors LowStock as a count.
func (s *MedicineStore) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM medicines WHERE stock_quantity <= min_stock_level`)
	if err != nil {
		return 0, fmt.Errorf("count low-stock medicines: %w", err)
	}
	return count, nil
}

// Search matches the term case-insensitively against name, generic name,
// manufacturer and category.
func (s *MedicineStore) Search(ctx context.Context, term string) ([]domain.Medicine, error) {
	like := "%" + strings.ToLower(term) + "%"
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT `+medicineColumns+` FROM medicines
         WHERE LOWER(name) LIKE ? OR LOWER(generic_name) LIKE ?
            OR LOWER(manufacturer) LIKE ? OR LOWER(category) LIKE ?
         ORDER BY name LIMIT ?`, like, like, like, like, searchCap)
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	return medicines, nil
}
