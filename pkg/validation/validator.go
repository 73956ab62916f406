package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// choice is implemented by every closed enumeration in models.
type choice interface {
	Valid() bool
}

// GetValidator returns the shared validator with the inspection rules
// registered: "choice" for enumerations and "decimal=D:P" for fixed-precision
// numbers with at most D digits of which P are decimal places.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = validate.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
			c, ok := fl.Field().Interface().(choice)
			return ok && c.Valid()
		})

		_ = validate.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
			return decimalViolation(fl.Field().String(), fl.Param()) == ""
		})
	})

	return validate
}

// Struct runs the tag rules on s and returns the failures keyed by JSON name.
func Struct(s interface{}) FieldErrors {
	fe := FieldErrors{}
	err := GetValidator().Struct(s)
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("non_field_errors", err.Error())
		return fe
	}
	for _, v := range verrs {
		fe.Add(v.Field(), message(v))
	}
	return fe
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "choice":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "decimal":
		s, _ := fe.Value().(string)
		if msg := decimalViolation(s, fe.Param()); msg != "" {
			return msg
		}
		return "A valid number is required."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// decimalViolation reports why s does not fit a decimal(digits, places)
// column, or "" when it fits.
func decimalViolation(s, param string) string {
	digits, places, err := parseDecimalParam(param)
	if err != nil {
		return "Invalid decimal rule."
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "A valid number is required."
	}

	str := d.Abs().String()
	whole, frac, _ := strings.Cut(str, ".")
	whole = strings.TrimLeft(whole, "0")

	if len(frac) > places {
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", places)
	}
	if len(whole) > digits-places {
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", digits-places)
	}
	if len(whole)+len(frac) > digits {
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", digits)
	}
	return ""
}

func parseDecimalParam(param string) (int, int, error) {
	d, p, ok := strings.Cut(param, ":")
	if !ok {
		return 0, 0, fmt.Errorf("decimal rule %q: want digits:places", param)
	}
	digits, err := strconv.Atoi(d)
	if err != nil {
		return 0, 0, err
	}
	places, err := strconv.Atoi(p)
	if err != nil {
		return 0, 0, err
	}
	return digits, places, nil
}
