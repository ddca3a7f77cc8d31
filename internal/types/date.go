package types

import (
	"database/sql"
	"database/sql/driver"
	"strings"
	"time"
)

// Date is a calendar day without a time component. It is always in UTC.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts both full dates and RFC3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
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

	*d = DateOf(t)
	return nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value interface{}) error {
	if s, ok := value.(string); ok {
		parsed, err := ParseDate(s[:min(len(s), len(time.DateOnly))])
		*d = parsed
		return err
	}

	nullTime := &sql.NullTime{}
	err := nullTime.Scan(value)
	if err != nil || !nullTime.Valid {
		*d = Date{}
		return err
	}

	*d = DateOf(nullTime.Time)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// GormDataType defines the data type used by gorm the type.
func (Date) GormDataType() string {
	return "date"
}

func (d Date) Year() int {
	return time.Time(d).Year()
}

func (d Date) Month() time.Month {
	return time.Time(d).Month()
}

func (d Date) Day() int {
	return time.Time(d).Day()
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Date) Compare(e Date) int {
	return time.Time(d).Compare(time.Time(e))
}

// MonthOf returns the month the date is in.
func (d Date) MonthOf() Month {
	return MonthOf(time.Time(d))
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}
