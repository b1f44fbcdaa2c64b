package exceptions

import (
	"bookwell-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		tag := firstErr.Tag()
		customMessage, ok := constvars.CustomValidationErrorMessages[tag]
		if tag == "phone_number" || tag == "timezone_name" {
			return customMessage
		}
		if !ok {
			customMessage = "is invalid"
		}
		if constvars.TagsWithParams[tag] {
			customMessage = strings.Replace(customMessage, "%s", firstErr.Param(), 1)
		}
		return fieldName + " " + customMessage
	}
	return constvars.ErrClientCannotProcessRequest
}
