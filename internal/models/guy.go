package models

import "gorm.io/gorm"

// Guy is the subject of stories. Created lazily the first time a story
// references a person no existing row fuzzy-matches. CreatedByUserID records
// who first mentioned him; it grants no ownership over stories about him.
type Guy struct {
	gorm.Model      `json:"-"`
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"index"`
	Phone           string `json:"phone" gorm:"index"`
	Socials         string `json:"socials"`
	Location        string `json:"location"`
	Age             int    `json:"age"`
	CreatedByUserID uint   `json:"created_by_user_id" gorm:"index"`
}

// GuySubject carries the identifying fields a story submission supplies.
// At least one of Name, Phone or Socials must be present.
type GuySubject struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Socials  string `json:"socials" validate:"omitempty,max=200"`
	Location string `json:"location" validate:"omitempty,max=100"`
	Age      int    `json:"age" validate:"omitempty,min=18,max=100"`
}

// HasIdentifier reports whether the subject carries at least one field
// usable to match or create a Guy row.
func (s GuySubject) HasIdentifier() bool {
	return s.Name != "" || s.Phone != "" || s.Socials != ""
}
