package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("timezone_name", validateTimezoneName)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	phoneNumber := fl.Field().String()
	re := regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
	return re.MatchString(phoneNumber)
}

func validateTimezoneName(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}
