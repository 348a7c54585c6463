package validator

import (
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"gt":       "{field} must be greater than {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"min":      "{field} must be at least {param} characters",
		"email":    "{field} must be a valid email address",
		"gtfield":  "{field} must be after {param}",
		"numeric":  "{field} must be a number",
	}
)

// Messenger lets a form override the message of one field rule, keyed "<field>.<tag>".
type Messenger interface {
	Messages() map[string]string
}

func fieldMessage(valErr val.FieldError, field string, overrides map[string]string) string {
	if override, ok := overrides[field+"."+valErr.Tag()]; ok {
		return override
	}

	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return Humanize(valErr.Field()) + " is invalid"
	}

	errStr = strings.ReplaceAll(errStr, "{field}", Humanize(valErr.Field()))
	errStr = strings.ReplaceAll(errStr, "{param}", humanizeParam(valErr.Tag(), valErr.Param()))

	return errStr
}

// Humanize turns a form field name like "check_out" into "Check out".
func Humanize(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}

	return strings.ToUpper(field[:1]) + field[1:]
}

func humanizeParam(tag, param string) string {
	switch tag {
	case "gtfield", "ltfield", "eqfield":
		return strings.ToLower(Humanize(toSnake(param)))
	default:
		return param
	}
}

// toSnake maps a struct field name (CheckIn) to its form name (check_in).
func toSnake(name string) string {
	var b strings.Builder

	for idx, r := range name {
		if idx > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}

		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}
