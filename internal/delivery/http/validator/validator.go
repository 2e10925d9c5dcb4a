// Package validator wires go-playground validation into echo's Validator hook.
package validator

import (
	domainerrors "contacts/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator adapts the go-playground validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the echo server.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags and maps failures onto the application
// error taxonomy so the error middleware renders them as 400s.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
