// Package validator provides the custom validation rules shared by the sync
// client and Gin's binding engine, and renders failures as field errors.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

const (
	maxDigits        = 12
	maxDecimalPlaces = 2
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var (
	shared *validator.Validate
	once   sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Get returns the validator used outside of Gin. It reads `validate` tags.
func Get() *validator.Validate {
	once.Do(func() {
		shared = validator.New(validator.WithRequiredStructEnabled())
		configure(shared)
	})
	return shared
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("decimal2", validateDecimal2)
	_ = v.RegisterValidation("civil_date", validateCivilDate)
	_ = v.RegisterValidation("username", validateUsername)
}

// jsonName reports fields by their JSON key so messages line up with the
// remote store's field map.
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validateDecimal2(fl validator.FieldLevel) bool {
	return AmountProblem(fl.Field().String()) == ""
}

func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// AmountProblem returns the message describing why s is not a valid amount,
// or "" when it is valid.
func AmountProblem(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "A valid number is required."
	}
	exp := d.Exponent()
	places := 0
	if exp < 0 {
		places = int(-exp)
	}
	digits := len(d.Coefficient().String())
	if d.Coefficient().Sign() < 0 {
		digits--
	}
	if exp > 0 {
		digits += int(exp)
	}
	if places > maxDecimalPlaces {
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", maxDecimalPlaces)
	}
	if digits > maxDigits {
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits)
	}
	return ""
}

// Struct validates s with the shared validator and returns a validation
// AppError carrying per-field messages, or nil.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	fields := ToFieldErrors(err)
	if len(fields) == 0 {
		return apperrors.Wrap(apperrors.ErrValidation, err)
	}
	return apperrors.WithFields(apperrors.ErrValidation, fields...)
}

// ToFieldErrors converts validator errors to ordered field errors. Errors of
// other types yield nil.
func ToFieldErrors(err error) apperrors.FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var fields apperrors.FieldErrors
	for _, fe := range verrs {
		fields = fields.Add(fieldKey(fe), message(fe))
	}
	return fields
}

func fieldKey(fe validator.FieldError) string {
	switch fe.Tag() {
	case "eqfield", "nefield":
		return apperrors.NonFieldErrors
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "max":
		if isNumber(fe) {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if isNumber(fe) {
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		if fe.Field() == "password1" {
			return fmt.Sprintf("This password is too short. It must contain at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	case "decimal2":
		return AmountProblem(fmt.Sprint(reflect.Indirect(reflect.ValueOf(fe.Value())).Interface()))
	case "civil_date":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

func isNumber(fe validator.FieldError) bool {
	switch reflect.Indirect(reflect.ValueOf(fe.Value())).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
