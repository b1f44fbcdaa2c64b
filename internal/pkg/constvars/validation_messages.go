package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"uuid":          "must be a valid UUID",
	"email":         "must be a valid email address",
	"min":           "must be at least %s characters",
	"max":           "must be at most %s characters",
	"datetime":      "must match the expected time format",
	"phone_number":  "phone number must be in international format, e.g. +6281234567890",
	"timezone_name": "timezone must be a valid IANA timezone name, e.g. Asia/Jakarta",
}

var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
}
