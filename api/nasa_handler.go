package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/services"
)

type nasaHandler struct {
	responder  Responder
	logger     zerolog.Logger
	apodClient *services.APODClient
}

func newNasaHandler(cfg *config.Config, apodClient *services.APODClient) nasaHandler {
	logger := log.With().Str("handlerName", "nasaHandler").Logger()

	return nasaHandler{
		responder:  NewResponder(logger, !cfg.IsProduction()),
		logger:     logger,
		apodClient: apodClient,
	}
}

// getAPOD proxies the Astronomy Picture of the Day provider
// @Summary Get picture of the day
// @Description Admin-guarded to protect the provider quota. Optional date selects a past day.
// @Tags NASA
// @Produce json
// @Param date query string false "Date in YYYY-MM-DD form"
// @Success 200 {object} services.APOD "Reshaped provider payload"
// @Failure 400 {object} ErrorResponse "Bad Request - malformed date"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 502 {object} ErrorResponse "Bad Gateway - provider failure with upstream status"
// @Router /nasa/apod [get]
func (h nasaHandler) getAPOD() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		h.logger.Info().Str("date", date).Msg("Fetching picture of the day")

		apod, err := h.apodClient.Fetch(r.Context(), date)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, apod)
	}
}
