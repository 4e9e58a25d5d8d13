package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the REST surface: reads are public, every write-class
// endpoint and the imagery proxy sit behind the admin token middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, adminMiddleware adminMiddleware) {
	// Public read endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts", handlers.postHandler.listPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/tags", handlers.tagHandler.listTags())
		r.Get("/tags/{tagID}", handlers.tagHandler.getTag())
		r.Get("/health", handlers.healthHandler.health())
	})

	// Admin-guarded endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(adminMiddleware.requireAdmin)

		r.Post("/posts", handlers.postHandler.createPost())
		r.Patch("/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

		r.Post("/tags", handlers.tagHandler.createTag())
		r.Patch("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

		r.Get("/nasa/apod", handlers.nasaHandler.getAPOD())
	})
}
