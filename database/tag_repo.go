package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/satelitear/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name.
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID, or nil when no tag owns that ID.
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs resolves the given IDs to tags, preserving the input order.
// The second return lists IDs that matched no tag.
func (r *TagRepo) FindByIDs(ids []uuid.UUID) ([]models.Tag, []uuid.UUID, error) {
	var found []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]models.Tag, len(found))
	for _, tag := range found {
		byID[tag.ID] = tag
	}

	tags := make([]models.Tag, 0, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if tag, ok := byID[id]; ok {
			tags = append(tags, tag)
		} else {
			missing = append(missing, id)
		}
	}
	return tags, missing, nil
}

// ExistsWithSlug reports whether any tag other than excludeID already owns
// the slug.
func (r *TagRepo) ExistsWithSlug(slug string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Model(&models.Tag{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update persists a tag's columns.
func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Save(tag).Error
}

// Delete removes a tag and its join rows by id.
func (r *TagRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.Tag{ID: id}).Error
}
