package app

import (
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

const maxWebhookBodyBytes = 65536

func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request, params api.StripeWebhookHandlerParams) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.webhooks.HandleWebhook(r.Context(), payload, params.StripeSignature)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, domain.ErrDuplicateWebhook):
		// Redeliveries are acknowledged so the provider stops retrying.
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, domain.ErrInvalidSignature):
		app.contextGetLogger(r).Warn("rejected webhook", "error", err)
		app.badRequestResponseWithMessage(w, r, ErrInvalidWebhookSignature)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
