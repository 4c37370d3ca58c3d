package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"absensi_qr/models"
)

// Service runs the kiosk pass: load the log, optionally record a scan, then
// rebuild the monthly summary. Every call derives its state from storage.
type Service struct {
	log        Log
	summary    SummaryTable
	window     Window
	location   *time.Location
	now        func() time.Time
	recorder   *Recorder
	aggregator *Aggregator
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone that defines "today" and the admission window.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

func NewService(log Log, summary SummaryTable, window Window, opts ...Option) *Service {
	s := &Service{
		log:      log,
		summary:  summary,
		window:   window,
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = NewRecorder(log, window)
	s.aggregator = NewAggregator(summary)
	return s
}

// invocation carries the clock readings for one pass.
type invocation struct {
	now   time.Time
	today string
	month string
}

func (s *Service) begin() invocation {
	now := s.now().In(s.location)
	return invocation{
		now:   now,
		today: now.Format(DateLayout),
		month: now.Format(MonthLayout),
	}
}

// Result is what one pass exposes for display.
type Result struct {
	Outcome Outcome
	Date    string
	Month   string
	Today   []models.AttendanceRecord
	Summary []models.MonthlySummaryRow
}

// Scan handles one kiosk interaction. An empty payload means no code was
// detected. Out-of-window scans return before storage is touched; invalid
// payloads stop before the summary rebuild.
func (s *Service) Scan(ctx context.Context, payload string) (Result, error) {
	inv := s.begin()
	res := Result{Date: inv.today, Month: inv.month}

	if !s.window.Contains(inv.now) {
		res.Outcome = Outcome{Status: StatusOutOfWindow, Err: ErrOutOfWindow}
		return res, nil
	}

	snapshot, err := s.log.ListAttendance(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: load attendance: %w", ErrStorageUnavailable, err)
	}

	if strings.TrimSpace(payload) == "" {
		res.Outcome = Outcome{Status: StatusNoCode}
	} else {
		res.Outcome, err = s.recorder.Record(ctx, payload, inv.now, snapshot)
		if err != nil {
			return res, err
		}
	}

	switch res.Outcome.Status {
	case StatusInvalidFormat:
		return res, nil
	case StatusRecorded:
		snapshot = append(snapshot, *res.Outcome.Record)
	}

	res.Summary, err = s.aggregator.Rebuild(ctx, snapshot, inv.month)
	if err != nil {
		return res, err
	}
	res.Today = OnDate(snapshot, inv.today)

	return res, nil
}

// KioskStatus describes the admission state at the current instant.
type KioskStatus struct {
	Date   string
	Month  string
	Window Window
	Open   bool
}

func (s *Service) Status() KioskStatus {
	inv := s.begin()
	return KioskStatus{
		Date:   inv.today,
		Month:  inv.month,
		Window: s.window,
		Open:   s.window.Contains(inv.now),
	}
}

// Today returns the current date and the records logged on it.
func (s *Service) Today(ctx context.Context) (string, []models.AttendanceRecord, error) {
	inv := s.begin()
	log, err := s.log.ListAttendance(ctx)
	if err != nil {
		return inv.today, nil, fmt.Errorf("%w: load attendance: %w", ErrStorageUnavailable, err)
	}
	return inv.today, OnDate(log, inv.today), nil
}

// Summary reads the stored summary table back.
func (s *Service) Summary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	rows, err := s.summary.ListSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load summary: %w", ErrStorageUnavailable, err)
	}
	return rows, nil
}

// Rebuild recomputes the summary for month, or the current month when empty.
func (s *Service) Rebuild(ctx context.Context, month string) ([]models.MonthlySummaryRow, error) {
	if month == "" {
		month = s.begin().month
	} else if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	log, err := s.log.ListAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load attendance: %w", ErrStorageUnavailable, err)
	}
	return s.aggregator.Rebuild(ctx, log, month)
}

func ValidateMonth(month string) error {
	if _, err := time.Parse(MonthLayout, month); err != nil || len(month) != len(MonthLayout) {
		return ErrInvalidMonth
	}
	return nil
}
