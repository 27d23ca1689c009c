// Package handler contains the HTTP handlers for accounts, venues and
// bookings.  Handlers bind and validate request bodies, call into the
// stores and the booking service, and map sentinel errors to status
// codes.
package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator ready to register on an echo
// instance.
func NewValidator() *Validator { return &Validator{v: validator.New()} }

// Validate implements echo.Validator.
func (val *Validator) Validate(i interface{}) error { return val.v.Struct(i) }

// getUserID extracts the authenticated user id stored in the context
// by the JWT middleware.  JSON numbers arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
