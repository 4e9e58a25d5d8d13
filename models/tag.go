package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents a topic category associated with zero or more posts
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Slug string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`

	Posts []Post `json:"-" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
