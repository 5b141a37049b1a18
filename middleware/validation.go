package middleware

import (
	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator output into the field -> message map used
// by ValidationErrorResponse.
func FieldErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			errors[fe.Field()] = fe.Field() + " is required!"
		case "email":
			errors[fe.Field()] = "Invalid email address!"
		case "min":
			errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + " characters long!"
		case "len":
			errors[fe.Field()] = fe.Field() + " must be exactly " + fe.Param() + " characters long!"
		case "oneof":
			errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param() + "!"
		case "gte":
			errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + "!"
		default:
			errors[fe.Field()] = fe.Field() + " is invalid!"
		}
	}

	return errors
}
