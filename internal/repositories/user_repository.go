package repositories

import (
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string) ([]models.User, error)

	SubmitVerification(userID uint, idImageURL string, idType models.IDType) (*models.User, error)
	ApproveUser(userID uint) (*models.User, error)
	RejectUser(userID uint, reason string) (*models.User, error)
	GetPendingVerifications(limit, offset int) ([]models.User, int64, error)

	CountByVerificationStatus(status models.VerificationStatus) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	AvgVerificationHours() (float64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return apperrors.Classify(r.db.Create(user).Error)
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return apperrors.Classify(r.db.Save(user).Error)
}

// SearchUsers searches for users by name or email (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return users, nil
}

// SubmitVerification records an ID submission and forces the user back to
// pending. Idempotent: resubmitting overwrites the previous document and
// clears any prior rejection, even when the user was already rejected.
func (r *PostgresUserRepository) SubmitVerification(userID uint, idImageURL string, idType models.IDType) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return apperrors.Classify(err)
		}
		user.IDImageURL = idImageURL
		user.IDType = idType
		user.VerificationStatus = models.VerificationPending
		user.Verified = false
		user.RejectionReason = ""
		user.VerifiedAt = nil
		return apperrors.Classify(tx.Save(&user).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ApproveUser marks a user's identity as verified
func (r *PostgresUserRepository) ApproveUser(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return apperrors.Classify(err)
		}
		now := time.Now()
		user.Verified = true
		user.VerificationStatus = models.VerificationApproved
		user.VerifiedAt = &now
		user.RejectionReason = ""
		return apperrors.Classify(tx.Save(&user).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RejectUser marks a user's verification as rejected with a reason
func (r *PostgresUserRepository) RejectUser(userID uint, reason string) (*models.User, error) {
	if reason == "" {
		reason = "ID verification failed"
	}
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return apperrors.Classify(err)
		}
		user.Verified = false
		user.VerificationStatus = models.VerificationRejected
		user.RejectionReason = reason
		user.VerifiedAt = nil
		return apperrors.Classify(tx.Save(&user).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPendingVerifications lists users awaiting review (pending status with a
// submitted document), oldest submission first, with limit/offset pagination.
// Returns the page and the total pending count.
func (r *PostgresUserRepository) GetPendingVerifications(limit, offset int) ([]models.User, int64, error) {
	var total int64
	err := r.db.Model(&models.User{}).
		Where("verification_status = ? AND id_image_url <> ''", models.VerificationPending).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.Classify(err)
	}

	var users []models.User
	err = r.db.
		Where("verification_status = ? AND id_image_url <> ''", models.VerificationPending).
		Order("updated_at asc").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, apperrors.Classify(err)
	}
	return users, total, nil
}

// CountByVerificationStatus counts users in a given verification state
func (r *PostgresUserRepository) CountByVerificationStatus(status models.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("verification_status = ?", status).Count(&count).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return count, nil
}

// CountCreatedSince counts users created at or after the given time
func (r *PostgresUserRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return count, nil
}

// AvgVerificationHours returns the mean hours between signup and approval
// across approved users. Computed in Go so the query stays portable across
// the Postgres and sqlite dialects. Zero when nobody is approved yet.
func (r *PostgresUserRepository) AvgVerificationHours() (float64, error) {
	var rows []struct {
		CreatedAt  time.Time
		VerifiedAt *time.Time
	}
	err := r.db.Model(&models.User{}).
		Select("created_at, verified_at").
		Where("verification_status = ? AND verified_at IS NOT NULL", models.VerificationApproved).
		Scan(&rows).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var totalHours float64
	for _, row := range rows {
		totalHours += row.VerifiedAt.Sub(row.CreatedAt).Hours()
	}
	return totalHours / float64(len(rows)), nil
}
