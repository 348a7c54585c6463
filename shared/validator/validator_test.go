package validator_test

import (
	"testing"
	"time"

	"pmsconsole/shared/model"
	"pmsconsole/shared/validator"

	"github.com/stretchr/testify/assert"
)

type guestForm struct {
	Name  string `form:"name"  validate:"required"`
	Email string `form:"email" validate:"required,email"`
}

type stayForm struct {
	CheckIn  model.Date  `form:"check_in"  validate:"required"`
	CheckOut model.Date  `form:"check_out" validate:"required,gtfield=CheckIn"`
	NumRooms int         `form:"num_rooms" validate:"gte=1"`
	Adults   int         `form:"adults"    validate:"gte=0"`
	Paid     model.Money `form:"amount_paid" validate:"gte=0"`
	Guest    guestForm   `form:"customer"`
}

func (stayForm) Messages() map[string]string {
	return map[string]string{
		"check_out.gtfield": "Check-out must be after check-in",
	}
}

func validStay() stayForm {
	return stayForm{
		CheckIn:  model.NewDate(2025, time.March, 10),
		CheckOut: model.NewDate(2025, time.March, 12),
		NumRooms: 1,
		Adults:   2,
		Paid:     model.NewMoney(50, 0),
		Guest:    guestForm{Name: "Ana Lestari", Email: "ana@example.com"},
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(f *stayForm)
		expected validator.FieldErrors
	}{
		{
			name:     "valid",
			mutate:   func(_ *stayForm) {},
			expected: nil,
		},
		{
			name: "check-out before check-in",
			mutate: func(f *stayForm) {
				f.CheckIn = model.NewDate(2025, time.March, 10)
				f.CheckOut = model.NewDate(2025, time.March, 8)
			},
			expected: validator.FieldErrors{"check_out": "Check-out must be after check-in"},
		},
		{
			name: "same day check-out",
			mutate: func(f *stayForm) {
				f.CheckOut = f.CheckIn
			},
			expected: validator.FieldErrors{"check_out": "Check-out must be after check-in"},
		},
		{
			name: "missing dates",
			mutate: func(f *stayForm) {
				f.CheckIn = model.Date{}
				f.CheckOut = model.Date{}
			},
			expected: validator.FieldErrors{
				"check_in":  "Check in is required",
				"check_out": "Check out is required",
			},
		},
		{
			name: "negative counts",
			mutate: func(f *stayForm) {
				f.NumRooms = 0
				f.Adults = -1
				f.Paid = model.Money(-1)
			},
			expected: validator.FieldErrors{
				"num_rooms":   "Num rooms must be greater than or equal to 1",
				"adults":      "Adults must be greater than or equal to 0",
				"amount_paid": "Amount paid must be greater than or equal to 0",
			},
		},
		{
			name: "nested customer email",
			mutate: func(f *stayForm) {
				f.Guest.Email = "ana@"
			},
			expected: validator.FieldErrors{"customer.email": "Email must be a valid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validStay()
			tt.mutate(&form)

			assert.Equal(t, tt.expected, validator.ValidateForm(&form))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	errs := validator.FieldErrors{"name": "Name is required", "email": "Email must be a valid email address"}

	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("phone"))
	assert.Equal(t, "email: Email must be a valid email address; name: Name is required", errs.Error())
}

func TestFieldErrors_Merge(t *testing.T) {
	parsed := validator.FieldErrors{"adults": "Adults must be a number"}
	validated := validator.FieldErrors{"adults": "Adults must be greater than or equal to 0", "customer.name": "Name is required"}

	merged := parsed.Merge(validated)

	assert.Equal(t, validator.FieldErrors{
		"adults":        "Adults must be a number",
		"customer.name": "Name is required",
	}, merged)

	var none validator.FieldErrors
	assert.Nil(t, none.Merge(nil))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Check out", validator.Humanize("check_out"))
	assert.Equal(t, "", validator.Humanize(""))
}
