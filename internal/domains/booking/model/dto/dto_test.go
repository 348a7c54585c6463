package dto_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pmsconsole/internal/domains/booking/model/dto"
	"pmsconsole/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking() url.Values {
	return url.Values{
		"check_in":       {"2025-03-10"},
		"check_out":      {"2025-03-12"},
		"room_type_id":   {"1"},
		"num_rooms":      {"1"},
		"adults":         {"2"},
		"children":       {"0"},
		"amount_paid":    {"100.00"},
		"customer.name":  {"Ana Lestari"},
		"customer.email": {"ana@example.com"},
	}
}

func createErrors(values url.Values) (dto.CreateBookingForm, validator.FieldErrors) {
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form := dto.NewCreateBookingForm()
	errs := form.FromForm(req).Merge(validator.ValidateForm(&form))

	return form, errs
}

func TestCreateBookingForm(t *testing.T) {
	tests := []struct {
		name     string
		change   func(url.Values)
		expected validator.FieldErrors
	}{
		{
			name:   "valid",
			change: func(url.Values) {},
		},
		{
			name: "check-out before check-in",
			change: func(v url.Values) {
				v.Set("check_out", "2025-03-08")
			},
			expected: validator.FieldErrors{"check_out": "Check-out must be after check-in"},
		},
		{
			name: "same day stay",
			change: func(v url.Values) {
				v.Set("check_out", "2025-03-10")
			},
			expected: validator.FieldErrors{"check_out": "Check-out must be after check-in"},
		},
		{
			name: "malformed date",
			change: func(v url.Values) {
				v.Set("check_in", "10/03/2025")
			},
			expected: validator.FieldErrors{"check_in": "Check in must be a valid date"},
		},
		{
			name: "customer email",
			change: func(v url.Values) {
				v.Set("customer.email", "ana@")
			},
			expected: validator.FieldErrors{"customer.email": "Enter a valid email address"},
		},
		{
			name: "no room type and no rooms",
			change: func(v url.Values) {
				v.Set("room_type_id", "")
				v.Set("num_rooms", "0")
			},
			expected: validator.FieldErrors{
				"room_type_id": "Select a room type",
				"num_rooms":    "Book at least one room",
			},
		},
		{
			name: "negative payment",
			change: func(v url.Values) {
				v.Set("amount_paid", "-5")
			},
			expected: validator.FieldErrors{"amount_paid": "Amount paid must be greater than or equal to 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := newBooking()
			tt.change(values)

			_, errs := createErrors(values)

			assert.Equal(t, tt.expected, errs)
		})
	}
}

func TestCreateBookingForm_Values(t *testing.T) {
	form, errs := createErrors(newBooking())
	require.Nil(t, errs)

	assert.Equal(t, "2025-03-10", form.CheckIn.String())
	assert.Equal(t, 2, form.CheckIn.Nights(form.CheckOut))
	assert.Equal(t, int64(10000), form.AmountPaid.Cents())
	assert.Equal(t, "Ana Lestari", form.Customer.Name)
}

func TestCancelBookingForm(t *testing.T) {
	req := httptest.NewRequest("POST", "/bookings/1/cancel", strings.NewReader("reason="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form := dto.CancelBookingForm{}
	errs := form.FromForm(req).Merge(validator.ValidateForm(&form))

	assert.Equal(t, validator.FieldErrors{"reason": "Give a reason for the cancellation"}, errs)
}

func TestListRequest(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		values  url.Values
		wantErr bool
	}{
		{
			name:   "filters",
			url:    "/bookings?status=cancelled&from_date=2025-03-01&to_date=2025-03-31",
			values: url.Values{"status_filter": {"cancelled"}, "from_date": {"2025-03-01"}, "to_date": {"2025-03-31"}, "limit": {"20"}, "offset": {"0"}},
		},
		{name: "unknown status", url: "/bookings?status=lost", wantErr: true},
		{name: "inverted range", url: "/bookings?from_date=2025-03-31&to_date=2025-03-01", wantErr: true},
		{name: "bad date", url: "/bookings?to_date=yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.ListRequest{}

			err := req.FromRequest(httptest.NewRequest("GET", tt.url, nil))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.values, req.Values())
		})
	}
}
