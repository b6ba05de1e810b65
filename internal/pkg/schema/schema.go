// Package schema holds the declarative validation rules for school records.
// Validation is pure and side-effect free so the submission form and the
// server run exactly the same checks on the same input.
package schema

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field length limits for a school record.
const (
	NameMaxLength    = 200
	AddressMaxLength = 500
	CityMaxLength    = 100
	StateMaxLength   = 100
	EmailMaxLength   = 200
	ContactMinDigits = 10
	ContactMaxDigits = 15
)

// contactPattern matches a digit-only contact number of accepted length.
var contactPattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// SchoolInput is the candidate record as submitted: every field is text.
// Contact stays a string here; conversion to an integer happens only after
// the digit rule has passed.
type SchoolInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Contact string `json:"contact" validate:"required,contact"`
	EmailID string `json:"email_id" validate:"required,email,max=200"`
}

// FieldError describes a single failed rule on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the submitted field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate checks a candidate record against the schema and returns every
// failed rule. A nil result means the input is valid.
func Validate(in SchoolInput) []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return fieldErrors
}

// messageFor creates a human-readable message for a failed rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "contact":
		return fe.Field() + " must be " + strconv.Itoa(ContactMinDigits) +
			" to " + strconv.Itoa(ContactMaxDigits) + " digits"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}

// ParseContact converts a validated contact string to its stored integer
// form. Call only after Validate has accepted the input; 15 digits always
// fit in an int64.
func ParseContact(contact string) (int64, error) {
	return strconv.ParseInt(contact, 10, 64)
}
