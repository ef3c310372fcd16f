package tracker

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateLayout is the wire and query format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) DateOnly {
	return DateOnly{Day(t)}
}

// Day returns midnight UTC of t's year/month/day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func (d DateOnly) String() string {
	return d.Time.Format(DateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(DateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// DateValue implements pgtype.DateValuer so DateOnly can be passed straight
// into query arguments.
func (d DateOnly) DateValue() (pgtype.Date, error) {
	if d.Time.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: Day(d.Time), Valid: true}, nil
}
