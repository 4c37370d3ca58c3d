package attendance

import (
	"context"
	"fmt"
	"time"

	"absensi_qr/models"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04:05"
)

// Recorder accepts at most one record per attendee per day.
type Recorder struct {
	log    Log
	window Window
}

func NewRecorder(log Log, window Window) *Recorder {
	return &Recorder{log: log, window: window}
}

// Record decides whether payload, scanned at now, becomes a new log entry.
// snapshot is the log as loaded at the start of the invocation; when nil the
// log is asked directly.
// Only storage failures are returned as errors.
func (r *Recorder) Record(ctx context.Context, payload string, now time.Time, snapshot []models.AttendanceRecord) (Outcome, error) {
	if !r.window.Contains(now) {
		return Outcome{Status: StatusOutOfWindow, Err: ErrOutOfWindow}, nil
	}

	identity, err := ParseIdentity(payload)
	if err != nil {
		return Outcome{Status: StatusInvalidFormat, Err: err}, nil
	}

	today := now.Format(DateLayout)
	present := HasRecord(snapshot, identity.ID, today)
	if snapshot == nil {
		if present, err = r.log.AttendanceExists(ctx, identity.ID, today); err != nil {
			return Outcome{}, fmt.Errorf("%w: check attendance: %w", ErrStorageUnavailable, err)
		}
	}
	if present {
		return Outcome{Status: StatusAlreadyPresent, Identity: identity}, nil
	}

	rec := models.AttendanceRecord{
		ID:      identity.ID,
		Name:    identity.Name,
		Program: identity.Program,
		Date:    today,
		Time:    now.Format(TimeLayout),
	}

	inserted, err := r.log.AppendIfAbsent(ctx, rec)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: append attendance: %w", ErrStorageUnavailable, err)
	}
	if !inserted {
		// Another scan for the same attendee won the race after our snapshot.
		return Outcome{Status: StatusAlreadyPresent, Identity: identity}, nil
	}

	return Outcome{Status: StatusRecorded, Identity: identity, Record: &rec}, nil
}

// HasRecord scans log for an entry with the given id on date.
func HasRecord(log []models.AttendanceRecord, id, date string) bool {
	id = NormalizeID(id)
	for _, rec := range log {
		if NormalizeID(rec.ID) == id && rec.Date == date {
			return true
		}
	}
	return false
}

// OnDate returns the records whose date equals date, in log order.
func OnDate(log []models.AttendanceRecord, date string) []models.AttendanceRecord {
	out := []models.AttendanceRecord{}
	for _, rec := range log {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out
}
