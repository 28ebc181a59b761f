package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/iccid"
)

func (app *Application) GetActivationInstructions(w http.ResponseWriter, r *http.Request, rawICCID string) {
	if !iccid.IsValid(rawICCID) {
		app.badRequestResponseWithMessage(w, r, ErrInvalidICCID)
		return
	}

	normalized := iccid.Normalize(rawICCID)

	esim, err := app.esimRepo.GetByICCID(r.Context(), normalized)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMessage(w, r, ErrESimNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.ActivationInstructionsResponse{
		Iccid:            esim.ICCID,
		SmdpAddress:      esim.SMDPAddress,
		MatchingId:       esim.MatchingID,
		QrAvailable:      esim.HasActivationCode(),
		ChecksumVerified: iccid.IsStrictlyValid(normalized),
	}

	if resp.QrAvailable {
		resp.LpaString = esim.LPAString()
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ValidateICCID reports how a raw ICCID normalizes and which validity checks
// it passes. An ICCID failing the checks is still a successful response.
func (app *Application) ValidateICCID(w http.ResponseWriter, r *http.Request) {
	var input api.ValidateICCIDJSONRequestBody

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	resp := api.ICCIDValidationResponse{
		Normalized:    iccid.Normalize(input.Iccid),
		Valid:         iccid.IsValid(input.Iccid),
		StrictlyValid: iccid.IsStrictlyValid(input.Iccid),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
