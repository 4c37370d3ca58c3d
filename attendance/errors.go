package attendance

import "errors"

var (
	ErrInvalidFormat      = errors.New("invalid identity payload")
	ErrOutOfWindow        = errors.New("outside admission window")
	ErrStorageUnavailable = errors.New("attendance storage unavailable")
	ErrInvalidMonth       = errors.New("month must be in YYYY-MM form")
)
