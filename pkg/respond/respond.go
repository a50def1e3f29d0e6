// Package respond centralizes the JSON envelope used by every API
// response: {success, data?, message?, error?, count?}.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK answers 200 with a single record.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// List answers 200 with a collection and its count. An empty collection
// is rendered as [] rather than null.
func List(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Created answers 201 with a message and the freshly created record.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Updated answers 200 with a message and the updated record.
func Updated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Deleted answers 200 with only a message.
func Deleted(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail answers the given status with a message and no detail.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// FailWith answers the given status with a message plus the underlying
// error text in the error field.
func FailWith(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Error: detail})
}
