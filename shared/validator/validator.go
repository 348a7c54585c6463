package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"pmsconsole/shared/model"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Field errors are reported under the form field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}

			if name != "" {
				return name
			}
		}

		return field.Name
	})

	// Calendar dates compare as time values.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if date, ok := field.Interface().(model.Date); ok {
			return date.Time
		}

		return nil
	}, model.Date{})

	// Amounts validate as their cent value.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if money, ok := field.Interface().(model.Money); ok {
			return money.Cents()
		}

		return nil
	}, model.Money(0))
}

// FieldErrors maps form field names to the message shown next to the field.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}

	return strings.Join(parts, "; ")
}

// Has reports whether field failed validation. Used by templates.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]

	return ok
}

// Merge returns the union of f and other. Messages already in f win.
func (f FieldErrors) Merge(other FieldErrors) FieldErrors {
	if len(f) == 0 && len(other) == 0 {
		return nil
	}

	merged := make(FieldErrors, len(f)+len(other))
	for field, msg := range other {
		merged[field] = msg
	}

	for field, msg := range f {
		merged[field] = msg
	}

	return merged
}

// ValidateForm validates a submitted form and returns one message per failing field,
// or nil when the form is valid. Only the first failing rule of a field is reported.
func ValidateForm[T any](data *T) FieldErrors {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return FieldErrors{"": err.Error()}
	}

	var overrides map[string]string
	if messenger, ok := any(data).(Messenger); ok {
		overrides = messenger.Messages()
	}

	fieldErrors := FieldErrors{}

	for _, valErr := range valErrors {
		field := formField(valErr)
		if _, seen := fieldErrors[field]; seen {
			continue
		}

		fieldErrors[field] = fieldMessage(valErr, field, overrides)
	}

	return fieldErrors
}

// formField returns the dotted form path of a nested field, e.g. "customer.email".
func formField(valErr val.FieldError) string {
	namespace := valErr.Namespace()

	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}

	return valErr.Field()
}
