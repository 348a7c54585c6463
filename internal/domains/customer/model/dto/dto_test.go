package dto_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pmsconsole/internal/domains/customer/model/dto"
	"pmsconsole/shared/validator"

	"github.com/stretchr/testify/assert"
)

func post(values url.Values) *dto.Form {
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form := &dto.Form{}
	form.FromForm(req)

	return form
}

func TestForm_Validation(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		expected validator.FieldErrors
	}{
		{
			name:     "valid",
			values:   url.Values{"name": {"Ana Lestari"}, "email": {"ana@example.com"}, "phone": {"+62 811 000"}},
			expected: nil,
		},
		{
			name:     "name required",
			values:   url.Values{"name": {"  "}, "email": {"ana@example.com"}},
			expected: validator.FieldErrors{"name": "Name is required"},
		},
		{
			name:     "email syntax",
			values:   url.Values{"name": {"Ana"}, "email": {"ana.example.com"}},
			expected: validator.FieldErrors{"email": "Enter a valid email address"},
		},
		{
			name:     "email required",
			values:   url.Values{"name": {"Ana"}},
			expected: validator.FieldErrors{"email": "Email is required"},
		},
		{
			name:     "phone too long",
			values:   url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "phone": {strings.Repeat("9", 21)}},
			expected: validator.FieldErrors{"phone": "Phone must be at most 20 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := post(tt.values)

			assert.Equal(t, tt.expected, validator.ValidateForm(form))
		})
	}
}

func TestListRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/customers?search=ana&page=2&page_size=10", nil)

	list := dto.ListRequest{}
	list.FromRequest(req)

	assert.Equal(t, url.Values{"search": {"ana"}, "limit": {"10"}, "offset": {"10"}}, list.Values())
	assert.Equal(t, "ana", list.Filters().Get("search"))
}
