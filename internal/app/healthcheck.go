package app

import (
	"net/http"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/vcs"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	systemInfo := api.SystemInfo{
		Version:     vcs.Version(),
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetOpenAPISpec serves the embedded API contract as JSON.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	swagger, err := api.GetSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, swagger, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
