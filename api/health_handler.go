package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/database"
)

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
}

func newHealthHandler(cfg *config.Config, database database.Database) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger, !cfg.IsProduction()),
		logger:    logger,
		database:  database,
	}
}

type componentHealth struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthResponse struct {
	API componentHealth `json:"api"`
	DB  componentHealth `json:"db"`
}

// health reports API and store availability
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse "api.ok is true when this endpoint responds; db.ok reflects a SELECT 1 probe"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			// api.ok is true because this endpoint responded
			API: componentHealth{OK: true},
			DB:  componentHealth{OK: true},
		}

		if err := h.database.Ping(); err != nil {
			h.logger.Error().Err(err).Msg("Database health check failed")
			response.DB = componentHealth{OK: false, Error: err.Error()}
		}

		h.responder.WriteJSON(w, response)
	}
}
