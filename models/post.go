package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the publication state of a post as stored and transmitted in
// response bodies. Client-facing query parameters use the lowercase form; see
// ParseStatus.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

// ParseStatus maps a wire value ("draft", "published", any casing) to the
// stored enumeration. The second return is false for unknown values.
func ParseStatus(s string) (PostStatus, bool) {
	switch PostStatus(strings.ToUpper(s)) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	}
	return "", false
}

// Post represents a satellite-data report with its publication metadata
type Post struct {
	ID             uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title          string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug           string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content        string     `json:"content" db:"content" gorm:"type:text;not null"`
	Status         PostStatus `json:"status" db:"status" gorm:"type:text;not null;default:DRAFT"`
	EventDate      time.Time  `json:"eventDate" db:"event_date" gorm:"type:timestamp;not null"`
	SourceAPIName  *string    `json:"sourceApiName,omitempty" db:"source_api_name" gorm:"type:text"`
	SourceImageURL *string    `json:"sourceImageUrl,omitempty" db:"source_image_url" gorm:"type:text"`
	SourceDataURL  *string    `json:"sourceDataUrl,omitempty" db:"source_data_url" gorm:"type:text"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
	Tags           []Tag      `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the primary key client-side so the model works the same
// against postgres and the sqlite used in tests.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
