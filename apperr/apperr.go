package apperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a business failure with a stable HTTP status, a machine-readable
// code and a human message. Services return it instead of leaking storage
// errors across the controller boundary.
type Error struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

// Respond writes err as a JSON body. Anything that is not an *Error becomes a
// generic 500 so internal details never reach the client.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Status, appErr)
		return
	}
	c.JSON(http.StatusInternalServerError, Error{
		Code:    "INTERNAL",
		Message: "Something went wrong",
	})
}
