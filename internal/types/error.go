package types

import "fmt"

// CustomError is an error middleware can return to short-circuit a request;
// the app error handler turns Code and Message into the {"error": msg}
// envelope. Type tags the failure domain (e.g. "auth.token") for logs.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewCustomError builds a CustomError.
func NewCustomError(code int, message, errType string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errType}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
