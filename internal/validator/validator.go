package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/esim-marketplace/internal/iccid"
)

const (
	ErrRequired   = "is required"
	ErrMaxLength  = "must be at most %s characters long"
	ErrICCID      = "must contain between 18 and 22 digits"
	ErrCheckoutID = "must be a valid checkout id"
	ErrInvalid    = "is invalid"
)

var checkoutIdRgx = regexp.MustCompile(`^[A-Za-z0-9_]{1,255}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("iccid", validateICCID)
	validator.RegisterValidation("checkout_id", validateCheckoutId)

	return validator
}

// validateICCID applies the lenient length-only policy.
func validateICCID(fl validator.FieldLevel) bool {
	return iccid.IsValid(fl.Field().String())
}

func validateCheckoutId(fl validator.FieldLevel) bool {
	return checkoutIdRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "iccid":
		return ErrICCID
	case "checkout_id":
		return ErrCheckoutID
	default:
		return ErrInvalid
	}
}
