package models

// AdminStats aggregates the numbers shown on the moderation dashboard.
type AdminStats struct {
	PendingUsers  int64 `json:"pending_users"`
	VerifiedUsers int64 `json:"verified_users"`
	RejectedUsers int64 `json:"rejected_users"`

	WeeklySignups  int64 `json:"weekly_signups"`
	WeeklyStories  int64 `json:"weekly_stories"`
	WeeklyMessages int64 `json:"weekly_messages"`

	// Average hours between account creation and approval, over approved users.
	AvgVerificationHours float64 `json:"avg_verification_hours"`
}

// RejectUserRequest defines the request body for rejecting a verification
type RejectUserRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ForceEditStoryRequest defines the request body for an admin story edit
type ForceEditStoryRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
