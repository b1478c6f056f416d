// Package reports provides the read-only aggregate views: low stock, expiry,
// today's sales, dashboard stats and free-text search. Nothing here mutates
// state, and nothing is cached.
package reports

import (
	"context"
	"fmt"
	"time"

	"pharmatrack/p/internal/domain"
)

// MedicineReader is the slice of the medicine store the views read from.
type MedicineReader interface {
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountExpiredAsOf(ctx context.Context, day string) (int64, error)
	LowStock(ctx context.Context) ([]domain.Medicine, error)
	ExpiredAsOf(ctx context.Context, day string) ([]domain.Medicine, error)
	Search(ctx context.Context, term string) ([]domain.Medicine, error)
}

// SaleReader lists sales within a half-open sale_date window.
type SaleReader interface {
	ListBetween(ctx context.Context, from, to string) ([]domain.Sale, error)
}

// DashboardStats is the uncached aggregate snapshot for the dashboard.
type DashboardStats struct {
	TotalMedicines        int64   `json:"total_medicines"`
	LowStockCount         int64   `json:"low_stock_count"`
	TodaySalesCount       int64   `json:"today_sales_count"`
	TodayRevenue          float64 `json:"today_revenue"`
	ExpiredMedicinesCount int64   `json:"expired_medicines_count"`
}

type Service struct {
	medicines MedicineReader
	sales     SaleReader
	now       func() time.Time
}

func NewService(medicines MedicineReader, sales SaleReader) *Service {
	return &Service{medicines: medicines, sales: sales, now: time.Now}
}

// LowStock returns medicines whose stock is at or below their minimum level.
func (s *Service) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	return s.medicines.LowStock(ctx)
}

// Expired returns medicines whose expiry date is today or earlier.
func (s *Service) Expired(ctx context.Context) ([]domain.Medicine, error) {
	return s.medicines.ExpiredAsOf(ctx, s.today())
}

// ExpiringWithin returns medicines expiring within the next days days,
// including anything already expired.
func (s *Service) ExpiringWithin(ctx context.Context, days int) ([]domain.Medicine, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := s.now().UTC().AddDate(0, 0, days).Format(time.DateOnly)
	return s.medicines.ExpiredAsOf(ctx, cutoff)
}

// TodaySales returns sales recorded during the current UTC day.
func (s *Service) TodaySales(ctx context.Context) ([]domain.Sale, error) {
	from, to := s.todayWindow()
	return s.sales.ListBetween(ctx, from, to)
}

// Dashboard computes each stat independently on every call.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalMedicines, err = s.medicines.Count(ctx); err != nil {
		return nil, fmt.Errorf("total medicines: %w", err)
	}
	if stats.LowStockCount, err = s.medicines.CountLowStock(ctx); err != nil {
		return nil, fmt.Errorf("low-stock count: %w", err)
	}
	if stats.ExpiredMedicinesCount, err = s.medicines.CountExpiredAsOf(ctx, s.today()); err != nil {
		return nil, fmt.Errorf("expired count: %w", err)
	}

	todaySales, err := s.TodaySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("today's sales: %w", err)
	}
	stats.TodaySalesCount = int64(len(todaySales))
	for _, sale := range todaySales {
		stats.TodayRevenue += sale.TotalAmount
	}
	return stats, nil
}

// SearchMedicines is a case-insensitive substring search over name, generic
// name, manufacturer and category.
func (s *Service) SearchMedicines(ctx context.Context, term string) ([]domain.Medicine, error) {
	return s.medicines.Search(ctx, term)
}

func (s *Service) today() string {
	return s.now().UTC().Format(time.DateOnly)
}

// todayWindow returns the [start, end) RFC3339 bounds of the current UTC day.
func (s *Service) todayWindow() (string, string) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start.Format(time.RFC3339), start.AddDate(0, 0, 1).Format(time.RFC3339)
}
