package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
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
				errors[field] = field + " must have at least " + e.Param() + " elements or characters"
			case "max":
				errors[field] = field + " must have at most " + e.Param() + " elements or characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "datetime":
				errors[field] = field + " must match the format " + e.Param()
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			case "dive":
				errors[field] = field + " contains an invalid element"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
