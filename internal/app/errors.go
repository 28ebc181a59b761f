package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/esim-marketplace/api"
	appvalidator "github.com/metinatakli/esim-marketplace/internal/validator"
)

const (
	ErrInternalServer          = "The server encountered a problem and could not process your request"
	ErrNotFound                = "The requested resource not found"
	ErrCheckoutNotFound        = api.CheckoutNotFoundMessage
	ErrESimNotFound            = "No eSIM found for the given ICCID"
	ErrInvalidICCID            = "ICCID must contain between 18 and 22 digits"
	ErrInvalidCheckoutID       = "Checkout id is invalid"
	ErrVerificationDown        = "Payment status could not be verified, please retry shortly"
	ErrMethodNotAllowed        = "The requested method is not supported for this resource"
	ErrValidationFailed        = "One or more fields failed validation"
	ErrInvalidWebhookSignature = "Webhook signature could not be verified"
	ErrRateLimitExceeded       = "Rate limit exceeded, slow down and retry"
)

// verificationRetryAfter is advertised on 503 responses so polling clients
// back off for at least one interval.
const verificationRetryAfter = "2"

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.errorResponseWithHeaders(w, r, status, message, nil)
}

func (app *Application) errorResponseWithHeaders(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	headers http.Header) {

	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, headers)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) badRequestResponseWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

// verificationUnavailableResponse reports a transient failure to reach the
// payment provider. Clients are expected to retry.
func (app *Application) verificationUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Warn("payment verification unavailable", "error", err)

	headers := http.Header{}
	headers.Set("Retry-After", verificationRetryAfter)

	app.errorResponseWithHeaders(w, r, http.StatusServiceUnavailable, ErrVerificationDown, headers)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	headers := http.Header{}
	headers.Set("Retry-After", rateLimitRetryAfter)

	app.errorResponseWithHeaders(w, r, http.StatusTooManyRequests, ErrRateLimitExceeded, headers)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	validationErrors := make([]api.ValidationError, 0, len(vErrs))
	for _, fieldErr := range vErrs {
		validationErrors = append(validationErrors, api.ValidationError{
			Field: lowerFirst(fieldErr.Field()),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrValidationFailed,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: validationErrors,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
