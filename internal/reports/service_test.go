package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmatrack/p/internal/domain"
)

type mockMedicineReader struct {
	total        int64
	lowStock     []domain.Medicine
	lowCount     int64
	expired      []domain.Medicine
	expiredCount int64
	searchHits   []domain.Medicine

	expiredAsOfDay string
	searchedTerm   string
}

func (m *mockMedicineReader) Count(ctx context.Context) (int64, error) { return m.total, nil }
func (m *mockMedicineReader) CountLowStock(ctx context.Context) (int64, error) {
	return m.lowCount, nil
}
func (m *mockMedicineReader) CountExpiredAsOf(ctx context.Context, day string) (int64, error) {
	m.expiredAsOfDay = day
	return m.expiredCount, nil
}
func (m *mockMedicineReader) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	return m.lowStock, nil
}
func (m *mockMedicineReader) ExpiredAsOf(ctx context.Context, day string) ([]domain.Medicine, error) {
	m.expiredAsOfDay = day
	return m.expired, nil
}
func (m *mockMedicineReader) Search(ctx context.Context, term string) ([]domain.Medicine, error) {
	m.searchedTerm = term
	return m.searchHits, nil
}

type mockSaleReader struct {
	sales []domain.Sale
	from  string
	to    string
}

func (m *mockSaleReader) ListBetween(ctx context.Context, from, to string) ([]domain.Sale, error) {
	m.from, m.to = from, to
	return m.sales, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 28, 14, 30, 45, 0, time.UTC)
}

func newTestService(medicines *mockMedicineReader, sales *mockSaleReader) *Service {
	s := NewService(medicines, sales)
	s.now = fixedNow
	return s
}

func TestTodaySalesUsesUTCDayWindow(t *testing.T) {
	sales := &mockSaleReader{}
	s := newTestService(&mockMedicineReader{}, sales)

	_, err := s.TodaySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28T00:00:00Z", sales.from)
	assert.Equal(t, "2026-08-29T00:00:00Z", sales.to)
}

func TestExpiredUsesCurrentDate(t *testing.T) {
	medicines := &mockMedicineReader{expired: []domain.Medicine{{Name: "Old"}}}
	s := newTestService(medicines, &mockSaleReader{})

	got, err := s.Expired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", medicines.expiredAsOfDay)
	require.Len(t, got, 1)
}

func TestExpiringWithinAddsDays(t *testing.T) {
	medicines := &mockMedicineReader{}
	s := newTestService(medicines, &mockSaleReader{})

	_, err := s.ExpiringWithin(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-04", medicines.expiredAsOfDay)

	// Non-positive day counts fall back to 30.
	_, err = s.ExpiringWithin(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-27", medicines.expiredAsOfDay)
}

func TestDashboardAggregates(t *testing.T) {
	medicines := &mockMedicineReader{total: 12, lowCount: 3, expiredCount: 2}
	sales := &mockSaleReader{sales: []domain.Sale{
		{TotalAmount: 52.25},
		{TotalAmount: 47.75},
	}}
	s := newTestService(medicines, sales)

	stats, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalMedicines)
	assert.Equal(t, int64(3), stats.LowStockCount)
	assert.Equal(t, int64(2), stats.ExpiredMedicinesCount)
	assert.Equal(t, int64(2), stats.TodaySalesCount)
	assert.InDelta(t, 100.0, stats.TodayRevenue, 1e-9)
}

func TestSearchPassesTermThrough(t *testing.T) {
	medicines := &mockMedicineReader{searchHits: []domain.Medicine{{Name: "Napa"}}}
	s := newTestService(medicines, &mockSaleReader{})

	got, err := s.SearchMedicines(context.Background(), "napa")
	require.NoError(t, err)
	assert.Equal(t, "napa", medicines.searchedTerm)
	require.Len(t, got, 1)
}
