package models

import "gorm.io/gorm"

// TagType classifies a story. The model stores exactly one tag per story;
// clients that send a list get the first entry persisted.
type TagType string

const (
	TagRedFlag   TagType = "red_flag"
	TagGoodVibes TagType = "good_vibes"
	TagUnsure    TagType = "unsure"
)

// AllTagTypes is the fixed enumeration used to zero-fill reaction counts.
var AllTagTypes = []TagType{TagRedFlag, TagGoodVibes, TagUnsure}

// ValidTag reports whether t is a known tag value.
func ValidTag(t TagType) bool {
	switch t {
	case TagRedFlag, TagGoodVibes, TagUnsure:
		return true
	}
	return false
}

// StoryContentMaxLen is the authoritative content limit, enforced at the
// model layer regardless of what any client-side editor allows.
const StoryContentMaxLen = 1000

// Story is an experience a user shares about a Guy. Owned exclusively by its
// author; only the author or an admin may edit or delete it.
type Story struct {
	gorm.Model `json:"-"`
	ID         uint    `json:"id" gorm:"primaryKey"`
	GuyID      uint    `json:"guy_id" gorm:"index"`
	UserID     uint    `json:"user_id" gorm:"index"`
	Content    string  `json:"content"`
	ImageURL   string  `json:"image_url,omitempty"`
	TagType    TagType `json:"tag_type" gorm:"type:varchar(20);index"`
}

// CreateStoryRequest defines the request body for sharing a story.
// Tags is a list for client convenience; only the first entry is stored.
type CreateStoryRequest struct {
	Content  string     `json:"content" validate:"required,min=1,max=1000"`
	ImageURL string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags     []TagType  `json:"tags" validate:"required,min=1,dive,oneof=red_flag good_vibes unsure"`
	Subject  GuySubject `json:"subject"`
}

// UpdateStoryRequest defines the request body for editing a story.
type UpdateStoryRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=1000"`
	ImageURL string  `json:"image_url,omitempty" validate:"omitempty,url"`
	TagType  TagType `json:"tag_type,omitempty" validate:"omitempty,oneof=red_flag good_vibes unsure"`
}
