// Package response renders the JSON envelope shared by handlers, middleware
// and the error handler.
package response

import "github.com/labstack/echo/v4"

// Envelope is the body of every error response and of responses that carry
// only a message.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error writes {"success": false, "message": msg} with the given status.
func Error(c echo.Context, code int, msg string) error {
	return c.JSON(code, Envelope{Success: false, Message: msg})
}

// Message writes {"success": true, "message": msg} with the given status.
func Message(c echo.Context, code int, msg string) error {
	return c.JSON(code, Envelope{Success: true, Message: msg})
}
