package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// DateList is an ordered list of calendar days, e.g. the pay dates of an
// income source. It is stored as a JSON array of ISO dates.
type DateList []Date

// DecodeDateList parses the stored representation of a DateList.
//
// Malformed input never fails, it decodes to an empty list.
func DecodeDateList(data []byte) DateList {
	if len(data) == 0 {
		return DateList{}
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("value", string(data)).Msg("discarding malformed date list")
		return DateList{}
	}

	list := make(DateList, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			log.Warn().Err(err).Str("value", string(data)).Msg("discarding malformed date list")
			return DateList{}
		}
		list = append(list, d)
	}

	return list
}

// Encode returns the stored representation of the list.
func (l DateList) Encode() []byte {
	raw := make([]string, 0, len(l))
	for _, d := range l {
		raw = append(raw, d.String())
	}

	// Marshalling a slice of strings cannot fail
	b, _ := json.Marshal(raw)
	return b
}

// Scan writes the value from the database.
func (l *DateList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = DateList{}
	case string:
		*l = DecodeDateList([]byte(v))
	case []byte:
		*l = DecodeDateList(v)
	default:
		return fmt.Errorf("cannot scan %T into a date list", value)
	}

	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (l DateList) Value() (driver.Value, error) {
	return string(l.Encode()), nil
}

// GormDataType defines the data type used by gorm the type.
func (DateList) GormDataType() string {
	return "text"
}

// Between returns the dates in the inclusive window [start, end], sorted.
// Duplicates are kept, each one is a separate occurrence.
func (l DateList) Between(start, end Date) DateList {
	in := make(DateList, 0, len(l))
	for _, d := range l {
		if d.Before(start) || d.After(end) {
			continue
		}
		in = append(in, d)
	}

	slices.SortStableFunc(in, func(a, b Date) int { return a.Compare(b) })
	return in
}

// Clone returns a copy that does not share memory with l.
func (l DateList) Clone() DateList {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}
