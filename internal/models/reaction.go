package models

import "time"

// StoryReaction records a user's reaction to a story. The composite unique
// index on (story_id, user_id) is the invariant: at most one row per pair.
// Reacting again with a different type updates the row in place.
type StoryReaction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StoryID      uint      `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_reaction"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_reaction"`
	ReactionType TagType   `json:"reaction_type" gorm:"type:varchar(20)"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReactRequest defines the request body for reacting to a story
type ReactRequest struct {
	ReactionType TagType `json:"reaction_type" validate:"required,oneof=red_flag good_vibes unsure"`
}
