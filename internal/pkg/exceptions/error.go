package exceptions

import (
	"bookwell-service/internal/pkg/constvars"
	"fmt"
	"runtime"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"dev_message,omitempty"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      getLocation(3),
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
