package attendance

import (
	"context"

	"absensi_qr/models"

	"github.com/stretchr/testify/mock"
)

type MockLog struct {
	mock.Mock
}

func (m *MockLog) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *MockLog) AttendanceExists(ctx context.Context, id, date string) (bool, error) {
	args := m.Called(ctx, id, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockLog) AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

type MockSummary struct {
	mock.Mock
}

func (m *MockSummary) ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlySummaryRow), args.Error(1)
}

func (m *MockSummary) ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}
