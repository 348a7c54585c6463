package dto

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pmsconsole/shared/model"
	"pmsconsole/shared/validator"
)

// FormReader reads typed values out of a submitted form. Values that do not
// parse are remembered as field errors and read as their zero value.
type FormReader struct {
	values  url.Values
	invalid validator.FieldErrors
}

func NewFormReader(r *http.Request) *FormReader {
	// ParseForm only fails on malformed bodies, which then read as empty.
	_ = r.ParseForm()

	return &FormReader{values: r.PostForm, invalid: validator.FieldErrors{}}
}

// NewFormReaderFromValues reads from already parsed values.
func NewFormReaderFromValues(values url.Values) *FormReader {
	return &FormReader{values: values, invalid: validator.FieldErrors{}}
}

func (f *FormReader) String(key string) string {
	return strings.TrimSpace(f.values.Get(key))
}

func (f *FormReader) Int(key string) int {
	return int(f.Int64(key))
}

func (f *FormReader) Int64(key string) int64 {
	raw := f.String(key)
	if raw == "" {
		return 0
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.invalid[key] = validator.Humanize(lastSegment(key)) + " must be a number"

		return 0
	}

	return n
}

func (f *FormReader) Date(key string) model.Date {
	date, err := model.ParseDate(f.String(key))
	if err != nil {
		f.invalid[key] = validator.Humanize(lastSegment(key)) + " must be a valid date"

		return model.Date{}
	}

	return date
}

func (f *FormReader) Money(key string) model.Money {
	raw := f.String(key)
	if raw == "" {
		return 0
	}

	money, err := model.ParseMoney(raw)
	if err != nil {
		f.invalid[key] = validator.Humanize(lastSegment(key)) + " must be an amount"

		return 0
	}

	return money
}

// Errors returns the fields that failed to parse, or nil.
func (f *FormReader) Errors() validator.FieldErrors {
	if len(f.invalid) == 0 {
		return nil
	}

	return f.invalid
}

func lastSegment(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[idx+1:]
	}

	return key
}
