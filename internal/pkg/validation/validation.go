// Package validation wraps go-playground/validator and renders failures as
// per-field, human-readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	// bcrypt rejects anything longer.
	maxPasswordBytes = 72
)

// Errors holds validation messages keyed by field, in the order they were found.
type Errors struct {
	Fields map[string][]string
	order  []string
}

func NewErrors() *Errors {
	return &Errors{Fields: make(map[string][]string)}
}

// Add appends msg to field.
func (e *Errors) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no message was recorded.
func (e *Errors) Empty() bool {
	return len(e.order) == 0
}

// Messages returns every message, field by field.
func (e *Errors) Messages() []string {
	var out []string
	for _, f := range e.order {
		out = append(out, e.Fields[f]...)
	}
	return out
}

// Summary is the first message plus a count of the remaining ones.
func (e *Errors) Summary() string {
	msgs := e.Messages()
	switch len(msgs) {
	case 0:
		return ""
	case 1:
		return msgs[0]
	case 2:
		return msgs[0] + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", msgs[0], len(msgs)-1)
	}
}

func (e *Errors) Error() string {
	return e.Summary()
}

// EmailTaken is the failure reported when an email collides with an existing account.
func EmailTaken() *Errors {
	e := NewErrors()
	e.Add("email", "The email has already been taken.")
	return e
}

// Validator validates request structs tagged with `validate`.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that names fields after their json tags and knows
// the "password" and "filled" tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len(PasswordProblems(fl.Field().String())) == 0
	})
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

// Validate returns *Errors when i breaks its rules.
func (v *Validator) Validate(i any) error {
	return v.render(v.v.Struct(i))
}

// Var validates a single value against tag, reporting failures under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := NewErrors()
		for _, fe := range ve {
			for _, msg := range fieldMessages(field, fe) {
				out.Add(field, msg)
			}
		}
		return out
	}
	return err
}

func (v *Validator) render(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := NewErrors()
	for _, fe := range ve {
		field := fe.Field()
		for _, msg := range fieldMessages(field, fe) {
			out.Add(field, msg)
		}
	}
	return out
}

// fieldMessages converts a single FieldError into human-readable messages.
func fieldMessages(field string, fe validator.FieldError) []string {
	attr := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return []string{fmt.Sprintf("The %s field is required.", attr)}
	case "filled":
		return []string{fmt.Sprintf("The %s field must have a value.", attr)}
	case "email":
		return []string{fmt.Sprintf("The %s must be a valid email address.", attr)}
	case "max":
		return []string{fmt.Sprintf("The %s must not be greater than %s characters.", attr, fe.Param())}
	case "min":
		return []string{fmt.Sprintf("The %s must be at least %s characters.", attr, fe.Param())}
	case "password":
		return PasswordProblems(stringValue(fe.Value()))
	default:
		return []string{fmt.Sprintf("The %s is invalid.", attr)}
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

// PasswordProblems lists every password policy rule that pw breaks.
func PasswordProblems(pw string) []string {
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	var problems []string
	if len([]rune(pw)) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("The password must be at least %d characters.", minPasswordLength))
	}
	if len(pw) > maxPasswordBytes {
		problems = append(problems, fmt.Sprintf("The password must not be greater than %d characters.", maxPasswordBytes))
	}
	if !upper || !lower {
		problems = append(problems, "The password must contain at least one uppercase and one lowercase letter.")
	}
	if !digit {
		problems = append(problems, "The password must contain at least one number.")
	}
	return problems
}
