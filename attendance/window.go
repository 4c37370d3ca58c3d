package attendance

import (
	"fmt"
	"time"
)

// Window is the daily admission range. Both bounds are inclusive.
type Window struct {
	Start time.Duration
	End   time.Duration
}

func DefaultWindow() Window {
	return Window{Start: 7 * time.Hour, End: 16 * time.Hour}
}

// Contains reports whether the wall-clock part of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	offset := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return offset >= w.Start && offset <= w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%s - %s", FormatClock(w.Start), FormatClock(w.End))
}

// FormatClock renders an offset from midnight as HH:MM, or HH:MM:SS when
// seconds are set.
func FormatClock(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
