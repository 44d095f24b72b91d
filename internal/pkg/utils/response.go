package utils

import (
	"errors"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/responses"
	"mindhaven-service/internal/pkg/exceptions"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	WriteJSON(w, code, response)
}

// WriteJSON writes body as-is, for the few endpoints whose body is not the
// standard envelope.
func WriteJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		if customErr.RetryAfterSecs > 0 {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(customErr.RetryAfterSecs))
		}
		for _, location := range customErr.Locations {
			location := map[string]interface{}{
				"file":          location.File,
				"line":          location.Line,
				"function_name": location.FunctionName,
			}
			log.Error(customErr.DevMessage,
				zap.Int("status_code", code),
				zap.Any("location", location),
			)
		}
	} else {
		log.Error(err.Error())
	}

	response := exceptions.CustomError{
		Success:       false,
		ClientMessage: clientMessage,
	}

	// unhandled failures carry the raw error text outside production
	appEnvironment := GetEnvString("APP_ENV", "development")
	if code == constvars.StatusInternalServerError && appEnvironment != "production" {
		response.Detail = rootMessage(err)
	}

	WriteJSON(w, code, response)
}

func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
