package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var phonePattern = regexp.MustCompile(`^0\d{1,2}-?\d{3,4}-?\d{4}$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Booking date in compact YYYYMMDD form
	validate.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 8 {
			return false
		}
		_, err := time.Parse("20060102", s)
		return err == nil
	})

	// Tee time in HHmm or HH:mm form
	validate.RegisterValidation("booktime", func(fl validator.FieldLevel) bool {
		s := strings.ReplaceAll(fl.Field().String(), ":", "")
		if len(s) != 4 {
			return false
		}
		_, err := time.Parse("1504", s)
		return err == nil
	})

	// Korean phone number, dashes optional
	validate.RegisterValidation("krphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	// Catalog sort option
	validate.RegisterValidation("sortoption", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		validOptions := []string{"default", "teeTime", "name"}
		for _, o := range validOptions {
			if s == o {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "ymd":
			errors[field] = "Invalid date. Must be YYYYMMDD"
		case "booktime":
			errors[field] = "Invalid tee time. Must be HHmm or HH:mm"
		case "krphone":
			errors[field] = "Invalid phone number"
		case "sortoption":
			errors[field] = "Invalid sort option. Must be: default, teeTime, or name"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
