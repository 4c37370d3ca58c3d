package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"absensi_qr/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// valuesAPI is the part of the Sheets values endpoint the store needs.
type valuesAPI interface {
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Append(ctx context.Context, rng string, rows [][]interface{}) error
	Clear(ctx context.Context, rng string) error
}

type sheetsValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (s *sheetsValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *sheetsValues) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	// RAW keeps ids such as "007" as text instead of letting Sheets coerce them.
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (s *sheetsValues) Clear(ctx context.Context, rng string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	AttendanceSheet string
	SummarySheet    string
}

// Sheets keeps both tables in worksheets of one Google spreadsheet. The API
// has no conditional append or transactions, so AppendIfAbsent and
// ReplaceSummary are serialized by locks that only cover this process.
type Sheets struct {
	values          valuesAPI
	attendanceSheet string
	summarySheet    string
	mu              sync.Mutex // attendance sheet
	summaryMu       sync.Mutex // summary sheet, held across clear + append
}

// NewSheets authenticates with a service account key file.
func NewSheets(ctx context.Context, cfg SheetsConfig) (*Sheets, error) {
	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("error parsing credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("error creating sheets client: %w", err)
	}

	return newSheets(&sheetsValues{svc: svc, spreadsheetID: cfg.SpreadsheetID}, cfg), nil
}

func newSheets(values valuesAPI, cfg SheetsConfig) *Sheets {
	return &Sheets{
		values:          values,
		attendanceSheet: cfg.AttendanceSheet,
		summarySheet:    cfg.SummarySheet,
	}
}

func (s *Sheets) Ping(ctx context.Context) error {
	_, err := s.values.Get(ctx, s.summarySheet+"!A1:A1")
	return err
}

func (s *Sheets) Close() error { return nil }

// records maps data rows to header names, like gspread's get_all_records.
func records(values [][]interface{}) []map[string]string {
	if len(values) == 0 {
		return nil
	}

	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = cellString(v)
	}

	out := make([]map[string]string, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = cellString(row[i])
			}
		}
		out = append(out, rec)
	}
	return out
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (s *Sheets) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	values, err := s.values.Get(ctx, s.attendanceSheet)
	if err != nil {
		return nil, fmt.Errorf("error fetching sheet %s: %w", s.attendanceSheet, err)
	}
	return parseAttendance(values), nil
}

func parseAttendance(values [][]interface{}) []models.AttendanceRecord {
	out := []models.AttendanceRecord{}
	for _, r := range records(values) {
		if r["NPM"] == "" {
			continue
		}
		out = append(out, models.AttendanceRecord{
			ID:      r["NPM"],
			Name:    r["Nama"],
			Program: r["Prodi"],
			Date:    r["Tanggal"],
			Time:    r["Jam"],
		})
	}
	return out
}

func (s *Sheets) AttendanceExists(ctx context.Context, id, date string) (bool, error) {
	log, err := s.ListAttendance(ctx)
	if err != nil {
		return false, err
	}
	for _, rec := range log {
		if rec.ID == id && rec.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *Sheets) AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.values.Get(ctx, s.attendanceSheet)
	if err != nil {
		return false, fmt.Errorf("error fetching sheet %s: %w", s.attendanceSheet, err)
	}
	for _, existing := range parseAttendance(values) {
		if existing.ID == rec.ID && existing.Date == rec.Date {
			return false, nil
		}
	}

	rows := [][]interface{}{{rec.ID, rec.Name, rec.Program, rec.Date, rec.Time}}
	if len(values) == 0 {
		rows = append([][]interface{}{headerRow(models.AttendanceHeader)}, rows...)
	}
	if err := s.values.Append(ctx, s.attendanceSheet, rows); err != nil {
		return false, fmt.Errorf("error appending to sheet %s: %w", s.attendanceSheet, err)
	}

	return true, nil
}

func (s *Sheets) ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	values, err := s.values.Get(ctx, s.summarySheet)
	if err != nil {
		return nil, fmt.Errorf("error fetching sheet %s: %w", s.summarySheet, err)
	}

	out := []models.MonthlySummaryRow{}
	for _, r := range records(values) {
		// Blank rows left behind by hand edits carry no attendee.
		if r["NPM"] == "" {
			continue
		}

		count := 0
		if raw := r["Jumlah Hadir"]; raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("error parsing count for %s: %w", r["NPM"], err)
			}
			count = n
		}
		out = append(out, models.MonthlySummaryRow{
			ID:    r["NPM"],
			Name:  r["Nama"],
			Month: r["Bulan"],
			Count: count,
		})
	}
	return out, nil
}

// ReplaceSummary clears the worksheet, then writes header and rows in one append.
func (s *Sheets) ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()

	if err := s.values.Clear(ctx, s.summarySheet); err != nil {
		return fmt.Errorf("error clearing sheet %s: %w", s.summarySheet, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, headerRow(models.SummaryHeader))
	for _, row := range rows {
		values = append(values, []interface{}{row.ID, row.Name, row.Month, row.Count})
	}

	if err := s.values.Append(ctx, s.summarySheet, values); err != nil {
		return fmt.Errorf("error writing sheet %s: %w", s.summarySheet, err)
	}
	return nil
}

func headerRow(names []string) []interface{} {
	row := make([]interface{}, len(names))
	for i, name := range names {
		row[i] = name
	}
	return row
}
