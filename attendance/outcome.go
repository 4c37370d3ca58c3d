package attendance

import (
	"fmt"

	"absensi_qr/models"
)

type Status int

const (
	StatusRecorded Status = iota + 1
	StatusAlreadyPresent
	StatusInvalidFormat
	StatusOutOfWindow
	// StatusNoCode means nothing was scanned; the pass still refreshes the summary.
	StatusNoCode
)

func (s Status) String() string {
	switch s {
	case StatusRecorded:
		return "recorded"
	case StatusAlreadyPresent:
		return "already_present"
	case StatusInvalidFormat:
		return "invalid_format"
	case StatusOutOfWindow:
		return "out_of_window"
	case StatusNoCode:
		return "no_code"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one scan.
type Outcome struct {
	Status   Status
	Identity Identity
	Record   *models.AttendanceRecord // set when Status is StatusRecorded
	Err      error                    // ErrInvalidFormat or ErrOutOfWindow for rejected scans
}

func (o Outcome) Message() string {
	switch o.Status {
	case StatusRecorded:
		return fmt.Sprintf("Attendance recorded: %s - %s", o.Identity.ID, o.Identity.Name)
	case StatusAlreadyPresent:
		return fmt.Sprintf("%s has already checked in today", o.Identity.Name)
	case StatusInvalidFormat:
		return "Invalid QR code format"
	case StatusOutOfWindow:
		return "Attendance is closed at this hour"
	case StatusNoCode:
		return "No QR code detected"
	default:
		return o.Status.String()
	}
}
