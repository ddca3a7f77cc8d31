package sandbox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID identifies an entity in a sandbox session.
//
// Entities copied from the database keep their persisted id. Entities created
// in the sandbox get a pending id allocated by the session, they never clash
// with persisted ids.
type ID struct {
	persisted uuid.UUID
	local     int64
}

// Persisted returns the ID of an entity that exists in the database.
func Persisted(id uuid.UUID) ID {
	return ID{persisted: id}
}

// Pending returns the ID of an entity that only exists in the session.
func Pending(n int64) ID {
	return ID{local: n}
}

// pendingRef stands in for pending ids where a database reference must be
// present for validation.
var pendingRef = uuid.Max

// IsZero reports if the ID is unset.
func (id ID) IsZero() bool {
	return id.persisted == uuid.Nil && id.local == 0
}

// IsPending reports if the entity only exists in the session.
func (id ID) IsPending() bool {
	return id.local != 0
}

// UUID returns the persisted id.
func (id ID) UUID() (uuid.UUID, bool) {
	return id.persisted, id.persisted != uuid.Nil
}

func (id ID) ref() uuid.UUID {
	if id.IsPending() {
		return pendingRef
	}
	return id.persisted
}

// String encodes the ID as "p:<uuid>" for persisted and "l:<n>" for pending
// ids. The zero ID is the empty string.
func (id ID) String() string {
	switch {
	case id.IsPending():
		return "l:" + strconv.FormatInt(id.local, 10)
	case id.IsZero():
		return ""
	default:
		return "p:" + id.persisted.String()
	}
}

// ParseID parses the output of String.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, nil
	}

	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	switch prefix {
	case "p":
		u, err := uuid.Parse(value)
		if err != nil || u == uuid.Nil {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
		return Persisted(u), nil
	case "l":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
		return Pending(n), nil
	}

	return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// ptr returns nil for the zero ID.
func ptr(id ID) *ID {
	if id.IsZero() {
		return nil
	}
	return &id
}

func persistedPtr(id *uuid.UUID) *ID {
	if id == nil {
		return nil
	}
	return ptr(Persisted(*id))
}

func refPtr(id *ID) *uuid.UUID {
	if id == nil || id.IsZero() {
		return nil
	}
	r := id.ref()
	return &r
}
