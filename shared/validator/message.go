package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"lt":          "{field} must be less than {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"datetime":    "{field} must match the layout {param}",
	"clock":       "{field} must be a time in HH:MM format",
	"numeric":     "{field} must be numeric",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// min and max read differently for lengths and for numbers.
var lengthMessages = map[string]string{
	"min": "{field} must be at least {param} {unit}",
	"max": "{field} must be at most {param} {unit}",
}

var boundMessages = map[string]string{
	"min": "{field} must be greater than or equal to {param}",
	"max": "{field} must be less than or equal to {param}",
}

// fieldName reports fields by their wire name so messages match the payload.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

// message renders the first failed rule of err.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	template, unit := messages[first.Tag()], "items"

	switch first.Kind() {
	case reflect.String:
		unit = "characters"

		fallthrough
	case reflect.Slice, reflect.Array, reflect.Map:
		if tmpl, ok := lengthMessages[first.Tag()]; ok {
			template = tmpl
		}
	default:
		if tmpl, ok := boundMessages[first.Tag()]; ok {
			template = tmpl
		}
	}

	if template == "" {
		return first.Error()
	}

	field := first.Field()
	if field == "" {
		field = "value"
	}

	return strings.NewReplacer(
		"{field}", field,
		"{param}", first.Param(),
		"{unit}", unit,
	).Replace(template)
}
