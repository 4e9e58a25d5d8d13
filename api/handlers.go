package api

import (
	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/database"
	"github.com/satelitear/backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler   postHandler
	tagHandler    tagHandler
	nasaHandler   nasaHandler
	healthHandler healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(cfg *config.Config, database database.Database) *routeHandlers {
	return &routeHandlers{
		postHandler:   newPostHandler(cfg, database.PostRepo(), database.TagRepo()),
		tagHandler:    newTagHandler(cfg, database.TagRepo()),
		nasaHandler:   newNasaHandler(cfg, services.NewAPODClient(cfg)),
		healthHandler: newHealthHandler(cfg, database),
	}
}
