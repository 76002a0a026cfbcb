package repositories

import (
	"fmt"
	"testing"

	"github.com/sauti-app/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database migrated with the full
// schema. The pool is pinned to one connection so every query sees the same
// in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Guy{},
		&models.Story{},
		&models.Comment{},
		&models.StoryReaction{},
		&models.Message{},
		&models.Campaign{},
		&models.CampaignRecipient{},
	)
	require.NoError(t, err)

	return db
}

var userSeq int

// seedUser inserts a user with a unique email and returns it
func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:               name,
		Email:              fmt.Sprintf("%s%d@example.com", name, userSeq),
		Age:                25,
		VerificationStatus: models.VerificationPending,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedStory inserts a guy and a story authored by the given user
func seedStory(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Story {
	t.Helper()
	guy := &models.Guy{Name: "Subject", CreatedByUserID: author.ID}
	require.NoError(t, db.Create(guy).Error)

	story := &models.Story{
		GuyID:   guy.ID,
		UserID:  author.ID,
		Content: content,
		TagType: models.TagRedFlag,
	}
	require.NoError(t, db.Create(story).Error)
	return story
}
