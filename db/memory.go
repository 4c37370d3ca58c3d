package db

import (
	"context"
	"sync"

	"absensi_qr/models"
)

// Memory keeps both tables in process memory. Used by tests and the
// "memory" driver for local runs.
type Memory struct {
	mu         sync.Mutex
	attendance []models.AttendanceRecord
	summary    []models.MonthlySummaryRow
	writes     int
}

func NewMemory(records ...models.AttendanceRecord) *Memory {
	return &Memory{attendance: append([]models.AttendanceRecord(nil), records...)}
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

func (m *Memory) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AttendanceRecord{}, m.attendance...), nil
}

func (m *Memory) AttendanceExists(ctx context.Context, id, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exists(id, date), nil
}

func (m *Memory) exists(id, date string) bool {
	for _, rec := range m.attendance {
		if rec.ID == id && rec.Date == date {
			return true
		}
	}
	return false
}

func (m *Memory) AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exists(rec.ID, rec.Date) {
		return false, nil
	}
	m.attendance = append(m.attendance, rec)
	return true, nil
}

func (m *Memory) ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.MonthlySummaryRow(nil), m.summary...), nil
}

func (m *Memory) ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = append([]models.MonthlySummaryRow(nil), rows...)
	m.writes++
	return nil
}

// SummaryWrites reports how many times the summary table was replaced.
func (m *Memory) SummaryWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
