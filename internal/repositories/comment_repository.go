package repositories

import (
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByStoryID(storyID uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return apperrors.Classify(r.db.Create(comment).Error)
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &comment, nil
}

// GetCommentsByStoryID retrieves all comments for a story, oldest first
func (r *PostgresCommentRepository) GetCommentsByStoryID(storyID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("story_id = ?", storyID).Order("created_at asc").Find(&comments).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return comments, nil
}

// UpdateComment updates an existing comment
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return apperrors.Classify(r.db.Save(comment).Error)
}

// DeleteComment removes a comment by ID for good
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return apperrors.Classify(r.db.Unscoped().Delete(&models.Comment{}, id).Error)
}
