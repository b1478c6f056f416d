package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pharmatrack/p/internal/domain"
)

// SupplierStore persists the suppliers collection.
type SupplierStore struct {
	db *sqlx.DB
}

func NewSupplierStore(db *sqlx.DB) *SupplierStore {
	return &SupplierStore{db: db}
}

func (s *SupplierStore) Insert(ctx context.Context, sup *domain.Supplier) error {
	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}
	if sup.CreatedAt == "" {
		sup.CreatedAt = nowUTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO suppliers (id, name, contact_person, phone, email, address, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sup.ID, sup.Name, sup.ContactPerson, sup.Phone, sup.Email, sup.Address, sup.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (s *SupplierStore) List(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := s.db.SelectContext(ctx, &suppliers,
		`SELECT id, name, contact_person, phone, email, address, created_at
         FROM suppliers ORDER BY created_at LIMIT ?`, listCap)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}
