package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/satelitear/backend/config"
	"github.com/satelitear/backend/database"
	"github.com/satelitear/backend/errs"
	"github.com/satelitear/backend/models"
	"github.com/satelitear/backend/slug"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
	// fallbackOnError serves the static sector set when the store is down;
	// disabled in production, where the error is surfaced instead.
	fallbackOnError bool
}

func newTagHandler(cfg *config.Config, tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder:       NewResponder(logger, !cfg.IsProduction()),
		logger:          logger,
		tagRepo:         tagRepo,
		fallbackOnError: !cfg.IsProduction(),
	}
}

// fallbackTags is the seeded sector set, served only when the store is
// unreachable outside production.
var fallbackTags = []*models.Tag{
	{Name: "Agricultura", Slug: "agriculture"},
	{Name: "Ambiente", Slug: "environment"},
	{Name: "Clima", Slug: "climate"},
	{Name: "Defensa", Slug: "defense"},
	{Name: "Respuesta a Desastres", Slug: "disaster-response"},
}

// listTags retrieves all tags ordered by name
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag "All tags"
// @Router /tags [get]
func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			if h.fallbackOnError {
				h.logger.Warn().Err(err).Msg("Tag listing unavailable, serving static fallback")
				h.responder.WriteJSON(w, fallbackTags)
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		if tags == nil {
			tags = []*models.Tag{}
		}
		h.responder.WriteJSON(w, tags)
	}
}

// getTag retrieves a specific tag by ID
// @Summary Get tag
// @Description Returns the tag, or a JSON null when no tag owns the ID
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Tag "Tag, or null"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid tagID"
// @Router /tags/{tagID} [get]
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}

		if tag == nil {
			h.responder.WriteJSON(w, nil)
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// createTag creates a new tag with a derived unique slug
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body createTagRequest true "Tag data"
// @Success 201 {object} models.Tag "Created tag"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid tag data"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 409 {object} ErrorResponse "Conflict - tag already exists"
// @Router /tags [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createTagRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if len(req.Name) < 2 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("name", "must be at least 2 characters"))
			return
		}

		tagSlug, err := slug.Resolve(slug.Make(req.Name), func(candidate string) (bool, error) {
			return h.tagRepo.ExistsWithSlug(candidate, nil)
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug", "tag", err))
			return
		}

		tag := models.Tag{Name: req.Name, Slug: tagSlug}
		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

// updateTag updates a tag's name, re-deriving its slug
// @Summary Update tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Param tag body updateTagRequest true "Fields to update"
// @Success 200 {object} models.Tag "Updated tag"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid tag data"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 404 {object} ErrorResponse "Not Found - tag not found"
// @Router /tags/{tagID} [patch]
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		existing, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req updateTagRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if len(name) < 2 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("name", "must be at least 2 characters"))
				return
			}

			newSlug, err := slug.Resolve(slug.Make(name), func(candidate string) (bool, error) {
				return h.tagRepo.ExistsWithSlug(candidate, &tagID)
			})
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check slug", "tag", err))
				return
			}

			existing.Name = name
			existing.Slug = newSlug
		}

		if err := h.tagRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update tag", "tag", err))
			return
		}

		h.responder.WriteJSON(w, existing)
	}
}

// deleteTag deletes a tag by ID
// @Summary Delete tag
// @Description Hard delete. Association rows to posts are removed as well.
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} map[string]bool "Success marker"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid tagID"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 404 {object} ErrorResponse "Not Found - tag not found"
// @Router /tags/{tagID} [delete]
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		existing, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		if err := h.tagRepo.Delete(tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tag", "tag", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
