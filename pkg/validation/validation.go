package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Errors maps a struct field name to its failure messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Nullable decimals validate as plain floats; a null value is
	// skipped by omitempty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		nd, ok := field.Interface().(decimal.NullDecimal)
		if !ok || !nd.Valid {
			return nil
		}
		f, _ := nd.Decimal.Float64()
		return f
	}, decimal.NullDecimal{})

	return v
}

// Struct checks the `validate` tags on v and returns the field errors,
// or nil when v is valid.
func Struct(v interface{}) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: v was not a struct
		return Errors{"": {err.Error()}}
	}

	errs := Errors{}
	for _, fe := range fieldErrors {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length can't be more than %s.", field, fe.Param())
		}
		return fmt.Sprintf("%s must be between 0 and %s.", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be at least %s.", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must be a positive value.", field)
		}
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	}
	return fmt.Sprintf("%s is invalid.", field)
}
