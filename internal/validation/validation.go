// Package validation wraps go-playground/validator with the site's custom
// rules and turns its errors into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every *Error.
var ErrInvalid = errors.New("validation failed")

// Error maps a field name (json name) to a human message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// FieldError builds an *Error for a single field.
func FieldError(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

var sgPhoneRe = regexp.MustCompile(`^(?:\+?65)?([3689]\d{7})$`)

// NormalizePhone accepts Singapore numbers with or without +65 and
// separators, returning the +65XXXXXXXX form.
func NormalizePhone(raw string) (string, bool) {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	m := sgPhoneRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return "+65" + m[1], true
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("sgphone", func(fl validator.FieldLevel) bool {
		_, ok := NormalizePhone(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		_, ok := model.NormalizeLevel(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Struct validates a tagged struct.
func (val *Validator) Struct(s any) error {
	return val.convert(val.v.Struct(s), "")
}

// Var validates a single value against a tag, reporting it under field.
func (val *Validator) Var(field string, value any, tag string) error {
	return val.convert(val.v.Var(value, tag), field)
}

func (val *Validator) convert(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fieldPath(fe)
		}
		if _, seen := out.Fields[name]; !seen {
			out.Fields[name] = message(fe)
		}
	}
	return out
}

// fieldPath drops the top-level struct name: "ParentInput.subjects[0]" -> "subjects[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "sgphone":
		return "must be a Singapore phone number"
	case "level":
		return "must be a school level such as Primary 5, Sec 3 or JC1"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return "needs at least " + fe.Param() + " item(s)"
		}
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "allows at most " + fe.Param() + " item(s)"
		}
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	case "number", "numeric":
		return "must be a whole number"
	case "uuid4", "uuid":
		return "must be a valid id"
	}
	return "is invalid"
}
