package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// amount: non-negative currency value in string form.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return !amount.IsNegative()
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "datetime":
				errors[field] = field + " must be a date in " + e.Param() + " format"
			case "number":
				errors[field] = field + " must be a non-negative whole number"
			case "amount":
				errors[field] = field + " must be a non-negative amount"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
