package attendance

import (
	"context"

	"absensi_qr/models"
)

// Log is the durable, append-only attendance log.
type Log interface {
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	AttendanceExists(ctx context.Context, id, date string) (bool, error)
	// AppendIfAbsent appends rec unless a record with the same id and date
	// already exists. It reports whether the record was written. The check and
	// the write happen as one step.
	AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error)
}

// SummaryTable holds the derived monthly rollup.
type SummaryTable interface {
	ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error)
	// ReplaceSummary clears the table and writes the header plus rows.
	ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error
}
