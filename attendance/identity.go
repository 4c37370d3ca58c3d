package attendance

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const payloadSeparator = "|"

// Identity is the decoded content of a scanned code.
type Identity struct {
	ID      string
	Name    string
	Program string
}

// ParseIdentity splits a payload of the form "id|name|program".
// The id stays a string: "007" is never turned into 7.
func ParseIdentity(payload string) (Identity, error) {
	if !utf8.ValidString(payload) {
		return Identity{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalidFormat)
	}

	fields := strings.Split(strings.TrimSpace(payload), payloadSeparator)
	if len(fields) != 3 {
		return Identity{}, fmt.Errorf("%w: want 3 fields, got %d", ErrInvalidFormat, len(fields))
	}

	id := Identity{
		ID:      NormalizeID(fields[0]),
		Name:    strings.TrimSpace(fields[1]),
		Program: strings.TrimSpace(fields[2]),
	}
	if id.ID == "" {
		return Identity{}, fmt.Errorf("%w: empty id", ErrInvalidFormat)
	}

	return id, nil
}

// NormalizeID returns the canonical form of an attendee id.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// Payload encodes the identity back into scan form.
func (i Identity) Payload() string {
	return strings.Join([]string{i.ID, i.Name, i.Program}, payloadSeparator)
}
