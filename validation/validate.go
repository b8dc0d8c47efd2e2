package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/lazyseq/errors"
)

// NoLimit is the join limit that disables truncation.
const NoLimit = -1

// squashed names embedded structs without a tag name of their own, whose
// fields the config loader lifts into the parent.
const squashed = "~"

// FieldError is one failed rule, keyed by the config path of the field,
// e.g. "demo.join_limit".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(configName)
		// limit: a join limit, non-negative or NoLimit.
		_ = validate.RegisterValidation("limit", func(fl validator.FieldLevel) bool {
			return fl.Field().Int() >= NoLimit
		})
	})
	return validate
}

// configName names a field the way the config loader keys it: mapstructure
// first, then yaml, then json, then snake_case.
func configName(fld reflect.StructField) string {
	for _, key := range []string{"mapstructure", "yaml", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return "-"
		}
		if name != "" {
			return name
		}
	}
	if fld.Anonymous {
		return squashed
	}
	return toSnakeCase(fld.Name)
}

// Validate checks s against its `validate:"..."` tags. Besides the
// validator builtins, the "limit" tag accepts a join limit.
//
// Failures come back as an *errors.AppError with code INVALID_INPUT and
// the failed fields under Details["fields"].
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation(err.Error())
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(e.Namespace()), Message: message(e)})
	}
	return newError(fields)
}

func newError(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}

// fieldPath drops the root type and squashed segments from a validator
// namespace: "Config.~.logging.level" becomes "logging.level".
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")[1:]
	path := segments[:0]
	for _, s := range segments {
		if s != squashed {
			path = append(path, s)
		}
	}
	return strings.Join(path, ".")
}

func message(e validator.FieldError) string {
	unit := ""
	switch e.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Map, reflect.Array:
		unit = " items"
	}
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + e.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "min", "gte":
		return "must be at least " + e.Param() + unit
	case "max", "lte":
		return "must be at most " + e.Param() + unit
	case "gt":
		return "must be greater than " + e.Param() + unit
	case "limit":
		return "must be -1 or non-negative"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
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
