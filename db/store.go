package db

import (
	"context"

	"absensi_qr/models"
)

// Store is implemented by every storage driver. It holds both durable tables.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	AttendanceExists(ctx context.Context, id, date string) (bool, error)
	AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error)

	ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error)
	ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error
}
