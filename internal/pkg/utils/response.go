package utils

import (
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/dto/responses"
	"bookwell-service/internal/pkg/exceptions"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		log.Error(customErr.DevMessage,
			zap.String("file", customErr.Location.File),
			zap.Int("line", customErr.Location.Line),
			zap.String("function_name", customErr.Location.FunctionName),
		)
	} else {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
	}

	if customErr != nil && GetEnvString("APP_ENV", "development") != "production" {
		response.DevMessage = customErr.DevMessage
	}
	json.NewEncoder(w).Encode(response)
}
