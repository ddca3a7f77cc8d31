// Package types implements the calendar types used for month resolution and projections.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var isoDate = regexp.MustCompile("^[0-9]{4}-[0-9]{2}-[0-9]{2}$")

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The month is expected to be either a full date or an RFC3339 timestamp.
// From the parsed string, everything is then ignored except the year and month
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`) // get rid of "
	if value == "" || value == "null" {
		return nil
	}

	pattern := time.RFC3339
	if isoDate.MatchString(value) {
		pattern = time.DateOnly
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*m = NewMonth(t.Year(), t.Month())
	return nil
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// Scan writes the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	if err != nil || !nullTime.Valid {
		*m = Month{}
		return err
	}

	*m = MonthOf(nullTime.Time)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Start is the first day of the month.
func (m Month) Start() Date {
	return DateOf(time.Time(m))
}

// End is the last day of the month.
func (m Month) End() Date {
	return DateOf(time.Time(m.AddDate(0, 1)).AddDate(0, 0, -1))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the date is in the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == time.Time(m).Year() && d.Month() == time.Time(m).Month()
}
