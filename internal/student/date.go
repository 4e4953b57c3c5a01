package student

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date (no time component) carried over JSON.
// The admin console sends plain dates; older clients send full
// RFC 3339 timestamps, so both layouts are accepted.
type Date time.Time

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date(time.Time{})
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", s, err)
		}
	}

	// Keep the calendar date of the payload's own offset; converting to
	// UTC first could shift it across midnight.
	year, month, day := t.Date()
	*d = Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Format(dateLayout))
}

func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}
