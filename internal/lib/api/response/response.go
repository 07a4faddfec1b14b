package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Ack is the webhook acknowledgment envelope. Telegram retries delivery on any
// non-2xx status, so failures still travel inside a 200-shaped body and only
// the wrong HTTP method earns a real error status.
type Ack struct {
	OK       bool            `json:"ok"`
	Info     string          `json:"info,omitempty"`
	Error    string          `json:"error,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

type MethodError struct {
	Error string `json:"error"`
}

func OK() Ack {
	return Ack{OK: true}
}

func Info(msg string) Ack {
	return Ack{
		OK:   true,
		Info: msg,
	}
}

func Err(msg string) Ack {
	return Ack{
		OK:    true,
		Error: msg,
	}
}

func Result(payload json.RawMessage) Ack {
	return Ack{
		OK:       true,
		Response: payload,
	}
}

func ValidationError(errs validator.ValidationErrors) Ack {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is required", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is invalid", err.Field()))
		}
	}

	return Err(strings.Join(errMsgs, ", "))
}

func MethodNotAllowed() MethodError {
	return MethodError{Error: "Method not allowed"}
}
