package models

import (
	"time"

	"gorm.io/gorm"
)

// RecipientStatus tracks per-recipient delivery state of a campaign.
type RecipientStatus string

const (
	RecipientPending RecipientStatus = "pending"
	RecipientSent    RecipientStatus = "sent"
	RecipientFailed  RecipientStatus = "failed"
)

// Campaign is an admin-authored email blast to platform users.
type Campaign struct {
	gorm.Model      `json:"-"`
	ID              uint   `json:"id" gorm:"primaryKey"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	CreatedByUserID uint   `json:"created_by_user_id" gorm:"index"`
}

// CampaignRecipient is one delivery attempt target. A row only moves to
// "sent" after the underlying email send succeeded; a failure mid-batch
// leaves the remaining rows pending.
type CampaignRecipient struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	CampaignID uint            `json:"campaign_id" gorm:"index"`
	UserID     uint            `json:"user_id" gorm:"index"`
	Email      string          `json:"email"`
	Status     RecipientStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"last_error,omitempty"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateCampaignRequest defines the request body for creating a campaign
type CreateCampaignRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required,min=1"`
}
