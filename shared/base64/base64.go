package base64

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeJSON serializes value and encodes it for use in a cookie value.
func EncodeJSON(value any) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding cookie payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeJSON reverses EncodeJSON into value.
func DecodeJSON(encoded string, value any) error {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding cookie payload: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("decoding cookie payload: %w", err)
	}

	return nil
}
