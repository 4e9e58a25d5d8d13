// Package web serves the public, server-rendered pages: report listing and
// detail views plus the admin entry page. It renders repository data only;
// all content mutation goes through the JSON API.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/database"
	"github.com/satelitear/backend/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	logger    zerolog.Logger
	templates *template.Template
	postRepo  *database.PostRepo
	tagRepo   *database.TagRepo
}

func NewHandler(cfg *config.Config, db database.Database) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:    log.With().Str("handlerName", "webHandler").Logger(),
		templates: templates,
		postRepo:  db.PostRepo(),
		tagRepo:   db.TagRepo(),
	}, nil
}

// Register mounts the page routes. Paths are disjoint from the JSON API.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/reportes", h.reportes)
	r.Get("/reportes/{slug}", h.reporte)
	r.Get("/admin", h.admin)
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to render template")
	}
}

type homePage struct {
	Posts []*models.Post
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	published := models.StatusPublished
	posts, err := h.postRepo.FindAll(database.PostFilter{Status: &published})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load posts for home page")
		h.render(w, http.StatusInternalServerError, "error.html", nil)
		return
	}

	// Most recent three reports
	if len(posts) > 3 {
		posts = posts[:3]
	}
	h.render(w, http.StatusOK, "home.html", homePage{Posts: posts})
}

type reportesPage struct {
	Posts     []*models.Post
	Tags      []*models.Tag
	ActiveTag string
	Search    string
}

func (h *Handler) reportes(w http.ResponseWriter, r *http.Request) {
	published := models.StatusPublished
	filter := database.PostFilter{
		Status: &published,
		Search: r.URL.Query().Get("search"),
	}

	activeTag := r.URL.Query().Get("tagId")
	if id, err := uuid.Parse(activeTag); err == nil {
		filter.TagIDs = []uuid.UUID{id}
	} else {
		activeTag = ""
	}

	posts, err := h.postRepo.FindAll(filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load reports")
		h.render(w, http.StatusInternalServerError, "error.html", nil)
		return
	}

	tags, err := h.tagRepo.FindAll()
	if err != nil {
		// The filter bar degrades to no tags; the listing still renders
		h.logger.Warn().Err(err).Msg("Failed to load tags for filter bar")
		tags = nil
	}

	h.render(w, http.StatusOK, "reportes.html", reportesPage{
		Posts:     posts,
		Tags:      tags,
		ActiveTag: activeTag,
		Search:    filter.Search,
	})
}

type reportePage struct {
	Post *models.Post
}

func (h *Handler) reporte(w http.ResponseWriter, r *http.Request) {
	post, err := h.postRepo.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load report")
		h.render(w, http.StatusInternalServerError, "error.html", nil)
		return
	}

	// Drafts are not publicly browsable
	if post == nil || post.Status != models.StatusPublished {
		h.render(w, http.StatusNotFound, "notfound.html", nil)
		return
	}

	h.render(w, http.StatusOK, "reporte.html", reportePage{Post: post})
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "admin.html", nil)
}
