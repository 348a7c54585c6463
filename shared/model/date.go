package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"pmsconsole/shared/constant"
	"pmsconsole/shared/timezone"
)

// Date is a calendar day as the backend exchanges it ("2025-03-10").
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, timezone.GetLocation())}
}

// DateOf truncates t to its day in the application timezone.
func DateOf(t time.Time) Date {
	return Date{Time: timezone.StartOfDay(t)}
}

func ParseDate(value string) (Date, error) {
	if value == "" {
		return Date{}, nil
	}

	t, err := timezone.Parse(constant.DateFormat, value)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(constant.DateFormat)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Nights counts the nights between d and checkOut.
func (d Date) Nights(checkOut Date) int {
	if d.IsZero() || checkOut.IsZero() {
		return 0
	}

	ay, am, ad := d.Date()
	by, bm, bd := checkOut.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}

		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}

	// Some endpoints send a full timestamp where a date is expected.
	if len(raw) > len(constant.DateFormat) {
		raw = raw[:len(constant.DateFormat)]
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
