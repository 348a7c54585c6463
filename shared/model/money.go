package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxUnits keeps units*100 plus a rounded fraction within int64.
const maxUnits = (math.MaxInt64 - 99) / 100

// Money is an amount held in cents. The backend serializes decimals either as
// strings ("120.50") or numbers (120.5); both decode.
type Money int64

func NewMoney(units int64, cents int64) Money {
	return Money(units*100 + cents)
}

// ParseMoney reads a decimal amount with at most two fractional digits after rounding.
func ParseMoney(value string) (Money, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(strings.TrimPrefix(value, "-"), "+")

	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", value, err)
	}

	if units > maxUnits {
		return 0, fmt.Errorf("parsing amount %q: out of range", value)
	}

	var cents int64

	if frac != "" {
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("parsing amount %q: invalid fraction", value)
			}
		}

		padded := frac + "00"
		cents, _ = strconv.ParseInt(padded[:2], 10, 64)

		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}

	amount := units*100 + cents
	if negative {
		amount = -amount
	}

	return Money(amount), nil
}

func (m Money) Cents() int64 {
	return int64(m)
}

// String formats the amount with two decimals, e.g. "1250.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)

	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = 0

		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
