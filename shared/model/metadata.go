package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"pmsconsole/shared/timezone"
)

// Metadata carries the timestamps every backend record exposes.
type Metadata struct {
	CreatedAt Timestamp  `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// Timestamp accepts RFC 3339 as well as the naive ISO timestamps the backend
// emits for columns stored without a zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}

		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t.Time = parsed

			return nil
		}
	}

	return fmt.Errorf("decoding timestamp %q: unsupported layout", raw)
}

// Local renders the timestamp in the application timezone.
func (t Timestamp) Local(layout string) string {
	return timezone.Format(t.Time, layout)
}
