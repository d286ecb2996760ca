package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/godilite/bonus-report/internal/repository/models"
)

// MockRecordSource is a mock implementation of the RecordSource interface
// for testing the service layer. It records the months it was asked for.
type MockRecordSource struct {
	LoadMonthFunc func(ctx context.Context, month string) (models.MonthTable, error)

	mu    sync.Mutex
	calls []string
}

// LoadMonth implements the RecordSource interface
func (m *MockRecordSource) LoadMonth(ctx context.Context, month string) (models.MonthTable, error) {
	m.mu.Lock()
	m.calls = append(m.calls, month)
	m.mu.Unlock()

	if m.LoadMonthFunc != nil {
		return m.LoadMonthFunc(ctx, month)
	}
	return models.MonthTable{}, errors.New("LoadMonthFunc not implemented")
}

// Calls returns the months requested so far.
func (m *MockRecordSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Tables returns a MockRecordSource serving fixed tables keyed by month.
func Tables(tables map[string]models.MonthTable) *MockRecordSource {
	return &MockRecordSource{
		LoadMonthFunc: func(ctx context.Context, month string) (models.MonthTable, error) {
			t, ok := tables[month]
			if !ok {
				return models.MonthTable{}, errors.New("no table for " + month)
			}
			return t, nil
		},
	}
}
