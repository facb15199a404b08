package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	rollNumberPattern = regexp.MustCompile(`^[0-9A-Za-z/-]{2,20}$`)
	ticketIDPattern   = regexp.MustCompile(`^[0-9A-Z]{4}$`)
)

// Validator wraps go-playground/validator with the custom rules this
// service needs and renders field-level messages.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("roll_number", func(fl validator.FieldLevel) bool {
		return rollNumberPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ticket_id", func(fl validator.FieldLevel) bool {
		return ticketIDPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates all failed fields for one request.
type ValidationErrors struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ", ")
}

// Validate checks a request struct and returns *ValidationErrors on
// failure.
func (v *Validator) Validate(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationErrors{}
	for _, fe := range invalid {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("please provide a %s", humanize(fe.Field()))
	case "email":
		return "please provide a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", humanize(fe.Field()), fe.Param())
	case "roll_number":
		return "please provide a valid roll number"
	case "ticket_id":
		return "unique id must be 4 characters from 0-9A-Z"
	case "min", "max":
		return fmt.Sprintf("%s length is out of range", humanize(fe.Field()))
	default:
		return fmt.Sprintf("%s is invalid", humanize(fe.Field()))
	}
}

func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
