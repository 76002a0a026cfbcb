package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Role is resolved once when a session token is issued, from the configured
// admin email allow-list. It is never stored as a column a user could mutate.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// VerificationStatus tracks a user's identity-verification state.
// "rejected" is not terminal: resubmitting an ID returns the user to "pending".
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// IDType enumerates the accepted identity documents.
type IDType string

const (
	IDTypeSchoolID   IDType = "school_id"
	IDTypeNationalID IDType = "national_id"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Age         int    `json:"age"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	// Not a unique index: local-signup rows leave this empty.
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"`

	// Verification state. VerificationStatus is the canonical gate predicate;
	// Verified is written in the same update wherever the status changes.
	Verified           bool               `json:"verified" gorm:"default:false"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(20);default:'pending';index"`
	IDImageURL         string             `json:"id_image_url,omitempty"`
	IDType             IDType             `json:"id_type,omitempty" gorm:"type:varchar(20)"`
	RejectionReason    string             `json:"rejection_reason,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`
}

// IsApproved reports whether the user has passed identity verification.
// This is the single predicate route gates use.
func (u *User) IsApproved() bool {
	return u.VerificationStatus == VerificationApproved
}

// UserCompact is the trimmed author shape embedded in story and comment responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// ToCompact returns the public subset of a user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Verified: u.Verified}
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"required,min=18,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SubmitVerificationRequest struct {
	IDImageURL string `json:"id_image_url" validate:"required,url"`
	IDType     IDType `json:"id_type" validate:"required,oneof=school_id national_id"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// Role is fixed at issuance; admin-only routes re-check the allow-list anyway.
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
