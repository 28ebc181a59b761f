package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/checkout"
	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/payment"
)

// GetCheckoutStatus returns the authoritative payment state of a checkout.
// Checkouts without an order are verified against the payment provider on
// every call.
func (app *Application) GetCheckoutStatus(w http.ResponseWriter, r *http.Request, checkoutId api.CheckoutId) {
	if err := app.validator.Var(checkoutId, "checkout_id"); err != nil {
		app.badRequestResponseWithMessage(w, r, ErrInvalidCheckoutID)
		return
	}

	status, err := app.resolver.Resolve(r.Context(), checkoutId)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidArgument):
			app.badRequestResponseWithMessage(w, r, ErrInvalidCheckoutID)
		case errors.Is(err, checkout.ErrNotFound):
			app.notFoundResponseWithMessage(w, r, ErrCheckoutNotFound)
		case errors.Is(err, checkout.ErrVerificationUnavailable):
			app.verificationUnavailableResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.CheckoutStatusResponse{
		CheckoutId:    status.CheckoutID,
		Status:        api.CheckoutStatus(status.Status),
		PaymentStatus: api.PaymentStatus(status.PaymentStatus),
		OrderId:       status.OrderID,
		PaymentUrl:    status.PaymentURL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetCheckout returns the stored checkout summary without contacting the
// payment provider.
func (app *Application) GetCheckout(w http.ResponseWriter, r *http.Request, checkoutId api.CheckoutId) {
	if err := app.validator.Var(checkoutId, "checkout_id"); err != nil {
		app.badRequestResponseWithMessage(w, r, ErrInvalidCheckoutID)
		return
	}

	summary, err := app.checkoutRepo.GetSummary(r.Context(), checkoutId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMessage(w, r, ErrCheckoutNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	paymentStatus := domain.PaymentStatusPending
	if summary.PaymentStatus != nil {
		paymentStatus = *summary.PaymentStatus
	}

	resp := api.CheckoutResponse{
		CheckoutId:         summary.ID,
		Status:             api.CheckoutStatus(summary.Status),
		PaymentStatus:      api.PaymentStatus(paymentStatus),
		OrderId:            summary.OrderID,
		PaymentUrl:         summary.PaymentURL,
		PackageName:        summary.PackageName,
		PackageDescription: summary.PackageDescription,
		Quantity:           summary.Quantity,
		TotalAmount:        payment.FormatAmount(summary.TotalCents),
		Currency:           summary.Currency,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
