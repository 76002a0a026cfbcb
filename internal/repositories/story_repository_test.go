package repositories

import (
	"testing"
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStoryWithNewSubject(t *testing.T) {
	db := setupTestDB(t)
	guyRepo := NewPostgresGuyRepository(db)
	storyRepo := NewPostgresStoryRepository(db)
	user := seedUser(t, db, "amina")

	guy, err := guyRepo.FindOrCreate(models.GuySubject{Name: "Jane", Phone: "0712345678"}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", guy.Name)
	assert.Equal(t, "0712345678", guy.Phone)
	assert.Equal(t, user.ID, guy.CreatedByUserID)

	story := &models.Story{
		GuyID:   guy.ID,
		UserID:  user.ID,
		Content: "test",
		TagType: models.TagRedFlag,
	}
	require.NoError(t, storyRepo.CreateStory(story))
	require.NotZero(t, story.ID)

	counts, err := storyRepo.GetReactionCounts(story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[models.TagRedFlag])
	assert.Equal(t, int64(0), counts[models.TagGoodVibes])
	assert.Equal(t, int64(0), counts[models.TagUnsure])
	assert.Len(t, counts, 3)

	commentCount, err := storyRepo.GetCommentCount(story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), commentCount)
}

func TestReactionUpsertReplacesInsteadOfDuplicating(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	user := seedUser(t, db, "amina")
	story := seedStory(t, db, user, "watch out")

	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: user.ID, ReactionType: models.TagGoodVibes,
	}))
	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: user.ID, ReactionType: models.TagRedFlag,
	}))

	var rows []models.StoryReaction
	require.NoError(t, db.Where("story_id = ?", story.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.TagRedFlag, rows[0].ReactionType)
	assert.Equal(t, user.ID, rows[0].UserID)

	counts, err := storyRepo.GetReactionCounts(story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.TagRedFlag])
	assert.Equal(t, int64(0), counts[models.TagGoodVibes])
}

func TestReactionReplaceKeepsOriginalTimestamp(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	user := seedUser(t, db, "amina")
	story := seedStory(t, db, user, "watch out")

	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: user.ID, ReactionType: models.TagGoodVibes,
	}))

	firstReacted := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&models.StoryReaction{}).
		Where("story_id = ? AND user_id = ?", story.ID, user.ID).
		Update("created_at", firstReacted).Error)

	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: user.ID, ReactionType: models.TagRedFlag,
	}))

	var row models.StoryReaction
	require.NoError(t, db.Where("story_id = ? AND user_id = ?", story.ID, user.ID).First(&row).Error)
	assert.Equal(t, models.TagRedFlag, row.ReactionType)
	assert.WithinDuration(t, firstReacted, row.CreatedAt, time.Second)
}

func TestReactionCountsAcrossUsers(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	author := seedUser(t, db, "amina")
	story := seedStory(t, db, author, "heads up")

	for i := 0; i < 3; i++ {
		reactor := seedUser(t, db, "reactor")
		require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
			StoryID: story.ID, UserID: reactor.ID, ReactionType: models.TagRedFlag,
		}))
	}
	other := seedUser(t, db, "wanjiru")
	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: other.ID, ReactionType: models.TagUnsure,
	}))

	counts, err := storyRepo.GetReactionCounts(story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[models.TagRedFlag])
	assert.Equal(t, int64(0), counts[models.TagGoodVibes])
	assert.Equal(t, int64(1), counts[models.TagUnsure])
}

func TestRemoveReactionIsNoopWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	user := seedUser(t, db, "amina")
	story := seedStory(t, db, user, "nothing here")

	// No reaction exists yet; removal still succeeds.
	assert.NoError(t, storyRepo.RemoveReaction(story.ID, user.ID))

	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: user.ID, ReactionType: models.TagGoodVibes,
	}))
	require.NoError(t, storyRepo.RemoveReaction(story.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.StoryReaction{}).Where("story_id = ?", story.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteStoryCascade(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	author := seedUser(t, db, "amina")
	commenter := seedUser(t, db, "wanjiru")
	story := seedStory(t, db, author, "to be deleted")

	require.NoError(t, db.Create(&models.Comment{StoryID: story.ID, UserID: commenter.ID, Content: "first"}).Error)
	require.NoError(t, db.Create(&models.Comment{StoryID: story.ID, UserID: author.ID, Content: "second"}).Error)
	require.NoError(t, storyRepo.UpsertReaction(&models.StoryReaction{
		StoryID: story.ID, UserID: commenter.ID, ReactionType: models.TagRedFlag,
	}))

	require.NoError(t, storyRepo.DeleteStoryCascade(story.ID))

	var commentCount, reactionCount, storyCount int64
	require.NoError(t, db.Unscoped().Model(&models.Comment{}).Where("story_id = ?", story.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.StoryReaction{}).Where("story_id = ?", story.ID).Count(&reactionCount).Error)
	require.NoError(t, db.Unscoped().Model(&models.Story{}).Where("id = ?", story.ID).Count(&storyCount).Error)
	assert.Equal(t, int64(0), commentCount)
	assert.Equal(t, int64(0), reactionCount)
	assert.Equal(t, int64(0), storyCount)
}

func TestDeleteStoryCascadeMissingStory(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)

	err := storyRepo.DeleteStoryCascade(12345)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteStoryCascadeLeavesOtherStoriesAlone(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := NewPostgresStoryRepository(db)
	author := seedUser(t, db, "amina")
	doomed := seedStory(t, db, author, "doomed")
	kept := seedStory(t, db, author, "kept")

	require.NoError(t, db.Create(&models.Comment{StoryID: kept.ID, UserID: author.ID, Content: "stays"}).Error)

	require.NoError(t, storyRepo.DeleteStoryCascade(doomed.ID))

	var keptComments int64
	require.NoError(t, db.Model(&models.Comment{}).Where("story_id = ?", kept.ID).Count(&keptComments).Error)
	assert.Equal(t, int64(1), keptComments)

	_, err := storyRepo.GetStoryByID(kept.ID)
	assert.NoError(t, err)
}
