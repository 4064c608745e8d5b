package payapi

import "fmt"

// ErrorType classifies API error responses.
type ErrorType string

const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeAuthentication ErrorType = "authentication_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypeRateLimit      ErrorType = "rate_limit_error"
)

// Error is a structured error response from the API. Transport failures and
// undecodable bodies are reported by the client layer as plain wrapped
// errors; Error is reserved for responses the API itself produced.
type Error struct {
	StatusCode int       `json:"-"`
	RequestID  string    `json:"-"`
	Type       ErrorType `json:"type"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Param      string    `json:"param,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payapi: %s (%s): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("payapi: %s: %s", e.Type, e.Message)
}

// ErrorEnvelope is the wire shape of an error response body.
type ErrorEnvelope struct {
	Error *Error `json:"error"`
}
