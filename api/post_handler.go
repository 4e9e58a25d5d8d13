package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

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

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
	tagRepo   *database.TagRepo
}

func newPostHandler(cfg *config.Config, postRepo *database.PostRepo, tagRepo *database.TagRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger, !cfg.IsProduction()),
		logger:    logger,
		postRepo:  postRepo,
		tagRepo:   tagRepo,
	}
}

// eventDate accepts full ISO-8601 timestamps and bare dates
var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseEventDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseTagIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, errs.NewInvalidFieldError("tagIds", "each tagId must be a valid UUID")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveTags maps tagIds to tag records in the given order, rejecting IDs
// that match no tag.
func (h postHandler) resolveTags(raw []string) ([]models.Tag, error) {
	ids, err := parseTagIDs(raw)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	tags, missing, err := h.tagRepo.FindByIDs(ids)
	if err != nil {
		return nil, wrapDatabaseError("find tags", "tags", err)
	}
	if len(missing) > 0 {
		return nil, errs.NewInvalidFieldError("tagIds", "one or more tagIds do not exist")
	}
	return tags, nil
}

// listPosts retrieves posts filtered by status, tag membership and text search
// @Summary List posts
// @Description Retrieves posts with their tags, newest first. All given filters are ANDed together.
// @Tags Posts
// @Produce json
// @Param status query string false "draft or published"
// @Param tagIds query string false "comma-separated tag UUIDs, matches posts with at least one"
// @Param search query string false "case-insensitive substring over title and content"
// @Success 200 {array} models.Post "Matching posts with tags"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid filter value"
// @Router /posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter database.PostFilter

		if statusParam := r.URL.Query().Get("status"); statusParam != "" {
			status, ok := models.ParseStatus(statusParam)
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft or published"))
				return
			}
			filter.Status = &status
		}

		if tagIDsParam := r.URL.Query().Get("tagIds"); tagIDsParam != "" {
			ids, err := parseTagIDs(strings.Split(tagIDsParam, ","))
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			filter.TagIDs = ids
		}

		filter.Search = r.URL.Query().Get("search")

		posts, err := h.postRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		if posts == nil {
			posts = []*models.Post{}
		}
		h.responder.WriteJSON(w, posts)
	}
}

// getPost retrieves a specific post by ID with its tags
// @Summary Get post
// @Description Returns the post with its tags, or a JSON null when no post owns the ID
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Post "Post with tags, or null"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid postID"
// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}

		// Absent post serializes as an explicit null
		if post == nil {
			h.responder.WriteJSON(w, nil)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// createPost creates a new post with a generated unique slug
// @Summary Create post
// @Description Creates a post. The slug derives from the title; collisions get an increasing numeric suffix.
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body createPostRequest true "Post data"
// @Success 201 {object} models.Post "Created post with tags"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid post data"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if len(req.Title) < 3 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("title", "must be at least 3 characters"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if req.EventDate == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("eventDate"))
			return
		}

		eventDate, err := parseEventDate(req.EventDate)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("eventDate", "must be a valid ISO-8601 date"))
			return
		}

		// Status defaults to draft when omitted
		status := models.StatusDraft
		if req.Status != "" {
			parsed, ok := models.ParseStatus(req.Status)
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft or published"))
				return
			}
			status = parsed
		}

		tags, err := h.resolveTags(req.TagIDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		postSlug, err := slug.Resolve(slug.Make(req.Title), func(candidate string) (bool, error) {
			return h.postRepo.ExistsWithSlug(candidate, nil)
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug", "post", err))
			return
		}

		post := models.Post{
			Title:          req.Title,
			Slug:           postSlug,
			Content:        req.Content,
			Status:         status,
			EventDate:      eventDate,
			SourceAPIName:  req.SourceAPIName,
			SourceImageURL: req.SourceImageURL,
			SourceDataURL:  req.SourceDataURL,
			Tags:           tags,
		}

		if err := h.postRepo.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		// Reload to return the persisted record with its tags
		createdPost, err := h.postRepo.FindByID(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created post", "post", err))
			return
		}

		// Preload order is unspecified; echo the tags in the order they were given
		createdPost.Tags = tags

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdPost)
	}
}

// updatePost partially updates an existing post
// @Summary Update post
// @Description Applies only the supplied fields. A title change recomputes the slug, excluding the post's own record from the collision check. A supplied tagIds replaces the full tag set.
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body updatePostRequest true "Fields to update"
// @Success 200 {object} models.Post "Updated post with tags"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid post data"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 404 {object} ErrorResponse "Not Found - post not found"
// @Router /posts/{postID} [patch]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		existing, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req updatePostRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if len(title) < 3 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("title", "must be at least 3 characters"))
				return
			}

			// Recompute the slug, excluding this post's own record so an
			// unchanged title keeps its slug.
			newSlug, err := slug.Resolve(slug.Make(title), func(candidate string) (bool, error) {
				return h.postRepo.ExistsWithSlug(candidate, &postID)
			})
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check slug", "post", err))
				return
			}

			existing.Title = title
			existing.Slug = newSlug
		}

		if req.Content != nil {
			if *req.Content == "" {
				h.responder.WriteError(w, errs.NewInvalidFieldError("content", "must not be empty"))
				return
			}
			existing.Content = *req.Content
		}

		if req.Status != nil {
			status, ok := models.ParseStatus(*req.Status)
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft or published"))
				return
			}
			existing.Status = status
		}

		if req.EventDate != nil {
			eventDate, err := parseEventDate(*req.EventDate)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("eventDate", "must be a valid ISO-8601 date"))
				return
			}
			existing.EventDate = eventDate
		}

		if req.SourceAPIName != nil {
			existing.SourceAPIName = req.SourceAPIName
		}
		if req.SourceImageURL != nil {
			existing.SourceImageURL = req.SourceImageURL
		}
		if req.SourceDataURL != nil {
			existing.SourceDataURL = req.SourceDataURL
		}

		// A supplied tagIds replaces the full set; an empty list clears it.
		// Resolved before any write so a bad reference persists nothing.
		var newTags *[]models.Tag
		if req.TagIDs != nil {
			tags, err := h.resolveTags(*req.TagIDs)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			newTags = &tags
		}

		if err := h.postRepo.Update(existing, newTags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		updatedPost, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated post", "post", err))
			return
		}

		// Preload order is unspecified; echo the set in the order it was given
		if newTags != nil {
			updatedPost.Tags = *newTags
		}

		h.responder.WriteJSON(w, updatedPost)
	}
}

// deletePost deletes a post by ID
// @Summary Delete post
// @Description Hard delete, no archival. Join rows to tags are removed as well.
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} map[string]bool "Success marker"
// @Failure 400 {object} ErrorResponse "Bad Request - invalid postID"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid admin token"
// @Failure 404 {object} ErrorResponse "Not Found - post not found"
// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		existing, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if err := h.postRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
