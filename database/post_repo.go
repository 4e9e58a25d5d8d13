package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/satelitear/backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

// likeEscaper neutralizes LIKE metacharacters so user-supplied search text
// matches them literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// PostFilter narrows FindAll. Nil/empty fields leave the corresponding
// predicate out entirely; present fields are ANDed together.
type PostFilter struct {
	Status *models.PostStatus
	TagIDs []uuid.UUID
	Search string
}

// FindAll returns posts matching the filter, most recently created first,
// with their tags preloaded.
func (r *PostRepo) FindAll(filter PostFilter) ([]*models.Post, error) {
	query := r.db.Model(&models.Post{}).Preload("Tags").Order("created_at DESC")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if len(filter.TagIDs) > 0 {
		// membership in at least one of the given tags
		memberOf := r.db.Table("post_tags").Select("post_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("id IN (?)", memberOf)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var posts []*models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID with tags preloaded, or nil when no post
// owns that ID.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a post by its slug with tags preloaded, or nil when no
// post owns that slug.
func (r *PostRepo) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").First(&post, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ExistsWithSlug reports whether any post other than excludeID already owns
// the slug. Pass nil excludeID on creation.
func (r *PostRepo) ExistsWithSlug(slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a new post. Tags already loaded on the model are connected
// through the join table in the order given.
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update persists the post's columns and, when tags is non-nil, swaps the full
// tag set for the given one in the same transaction, so a failure leaves
// neither write behind. A non-nil empty set clears all associations; nil
// leaves them untouched.
func (r *PostRepo) Update(post *models.Post, tags *[]models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		if tags != nil {
			return tx.Model(post).Association("Tags").Replace(*tags)
		}
		return nil
	})
}

// Delete removes a post and its join rows by id. Hard delete, no archival.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.Post{ID: id}).Error
}
