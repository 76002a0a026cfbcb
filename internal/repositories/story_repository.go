package repositories

import (
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetStoryByID(id uint) (*models.Story, error)
	GetStories(limit, offset int) ([]models.Story, error)
	GetStoriesByGuyID(guyID uint) ([]models.Story, error)
	GetStoriesByUserID(userID uint) ([]models.Story, error)
	UpdateStory(story *models.Story) error
	DeleteStoryCascade(id uint) error
	UpsertReaction(reaction *models.StoryReaction) error
	RemoveReaction(storyID, userID uint) error
	GetReactionCounts(storyID uint) (map[models.TagType]int64, error)
	GetCommentCount(storyID uint) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// CreateStory creates a new story
func (r *PostgresStoryRepository) CreateStory(story *models.Story) error {
	return apperrors.Classify(r.db.Create(story).Error)
}

// GetStoryByID retrieves a story by ID
func (r *PostgresStoryRepository) GetStoryByID(id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, id).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &story, nil
}

// GetStories retrieves stories newest-first with limit/offset pagination
func (r *PostgresStoryRepository) GetStories(limit, offset int) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Order("created_at desc").Limit(limit).Offset(offset).Find(&stories).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return stories, nil
}

// GetStoriesByGuyID retrieves all stories about a specific subject
func (r *PostgresStoryRepository) GetStoriesByGuyID(guyID uint) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Where("guy_id = ?", guyID).Order("created_at desc").Find(&stories).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return stories, nil
}

// GetStoriesByUserID retrieves all stories authored by a user
func (r *PostgresStoryRepository) GetStoriesByUserID(userID uint) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&stories).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return stories, nil
}

// UpdateStory updates an existing story
func (r *PostgresStoryRepository) UpdateStory(story *models.Story) error {
	return apperrors.Classify(r.db.Save(story).Error)
}

// DeleteStoryCascade deletes a story together with its comments and
// reactions in one transaction. Either everything goes or nothing does,
// so a failure mid-delete cannot leave orphaned comments behind.
func (r *PostgresStoryRepository) DeleteStoryCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var story models.Story
		if err := tx.First(&story, id).Error; err != nil {
			return apperrors.Classify(err)
		}
		// Hard deletes: moderation removals must leave no recoverable rows.
		if err := tx.Unscoped().Where("story_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return apperrors.Classify(err)
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.StoryReaction{}).Error; err != nil {
			return apperrors.Classify(err)
		}
		if err := tx.Unscoped().Delete(&models.Story{}, id).Error; err != nil {
			return apperrors.Classify(err)
		}
		return nil
	})
}

// UpsertReaction records a user's reaction to a story. The (story_id,
// user_id) unique index plus ON CONFLICT makes this a single atomic
// insert-or-update: reacting again replaces the type, never adds a row.
// created_at keeps the time of the first reaction.
func (r *PostgresStoryRepository) UpsertReaction(reaction *models.StoryReaction) error {
	reaction.CreatedAt = time.Now()
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction_type"}),
	}).Create(reaction).Error
	return apperrors.Classify(err)
}

// RemoveReaction deletes the user's reaction if present. Removing a
// reaction that does not exist is a no-op success, not an error.
func (r *PostgresStoryRepository) RemoveReaction(storyID, userID uint) error {
	res := r.db.Where("story_id = ? AND user_id = ?", storyID, userID).Delete(&models.StoryReaction{})
	return apperrors.Classify(res.Error)
}

// GetReactionCounts returns per-type reaction counts for a story. Every tag
// type appears in the result, zero-filled when nobody reacted with it.
func (r *PostgresStoryRepository) GetReactionCounts(storyID uint) (map[models.TagType]int64, error) {
	counts := make(map[models.TagType]int64, len(models.AllTagTypes))
	for _, t := range models.AllTagTypes {
		counts[t] = 0
	}

	var rows []struct {
		ReactionType models.TagType
		Count        int64
	}
	err := r.db.Model(&models.StoryReaction{}).
		Select("reaction_type, COUNT(*) as count").
		Where("story_id = ?", storyID).
		Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	for _, row := range rows {
		counts[row.ReactionType] = row.Count
	}
	return counts, nil
}

// GetCommentCount returns the number of comments on a story
func (r *PostgresStoryRepository) GetCommentCount(storyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("story_id = ?", storyID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return count, nil
}

// CountCreatedSince counts stories created at or after the given time
func (r *PostgresStoryRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Story{}).Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return count, nil
}
