package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/babelink/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// fieldName reports a field by its json name, so errors use the names the
// front end sent, falling back to snake_case for untagged fields.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return snakeCase(f.Name)
	}
	return name
}

// tagMessages phrases the tags command arguments use. Unknown tags read
// "is invalid".
var tagMessages = map[string]string{
	"required": "is required",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
	"min":      "must be at least %s",
	"lt":       "must be less than %s",
	"lte":      "must be at most %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of: %s",
	"url":      "must be a valid URL",
}

// Validate checks the `validate:"..."` tags of s and returns one
// INVALID_INPUT error naming every failing field.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !stderrors.As(err, &failures) {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, len(failures))
	for i, f := range failures {
		fields[i] = FieldError{Field: f.Field(), Message: message(f)}
	}
	return invalid(fields)
}

func message(f validator.FieldError) string {
	tmpl, ok := tagMessages[f.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(tmpl, "%s") {
		return strings.Replace(tmpl, "%s", f.Param(), 1)
	}
	return tmpl
}

// snakeCase turns FromLang into from_lang.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
