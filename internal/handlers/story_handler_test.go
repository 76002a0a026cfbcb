package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/middleware"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"github.com/sauti-app/backend/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type storyHandlerFixture struct {
	db      *gorm.DB
	e       *echo.Echo
	handler *StoryHandler
	stories *repositories.PostgresStoryRepository
}

func newStoryHandlerFixture(t *testing.T) *storyHandlerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Guy{}, &models.Story{},
		&models.Comment{}, &models.StoryReaction{},
	))

	e := echo.New()
	e.Validator = validators.NewValidator()

	stories := repositories.NewPostgresStoryRepository(db)
	guys := repositories.NewPostgresGuyRepository(db)
	users := repositories.NewPostgresUserRepository(db)

	return &storyHandlerFixture{
		db:      db,
		e:       e,
		handler: NewStoryHandler(stories, guys, users),
		stories: stories,
	}
}

var handlerUserSeq int

func (f *storyHandlerFixture) seedUser(t *testing.T, name string) *models.User {
	t.Helper()
	handlerUserSeq++
	user := &models.User{
		Name:               name,
		Email:              fmt.Sprintf("%s%d@example.com", name, handlerUserSeq),
		Age:                25,
		Verified:           true,
		VerificationStatus: models.VerificationApproved,
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *storyHandlerFixture) seedStory(t *testing.T, author *models.User, content string) *models.Story {
	t.Helper()
	guy := &models.Guy{Name: "Subject", CreatedByUserID: author.ID}
	require.NoError(t, f.db.Create(guy).Error)
	story := &models.Story{GuyID: guy.ID, UserID: author.ID, Content: content, TagType: models.TagRedFlag}
	require.NoError(t, f.db.Create(story).Error)
	return story
}

// request builds an authenticated echo context for the given user.
func (f *storyHandlerFixture) request(method, target, body string, user *models.User, role models.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ClaimsContextKey, &models.JwtCustomClaims{
			UserID: user.ID,
			Email:  user.Email,
			Role:   role,
		})
	}
	return c, rec
}

func TestCreateStoryEndpoint(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")

	body := `{"content":"He asked for my pin on the first date","tags":["red_flag"],"subject":{"name":"John Doe","phone":"0712345678"}}`
	c, rec := f.request(http.MethodPost, "/api/v1/stories", body, author, models.RoleUser)

	require.NoError(t, f.handler.CreateStory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "red_flag")

	var count int64
	require.NoError(t, f.db.Model(&models.Story{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateStoryRejectsUnknownTag(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")

	body := `{"content":"story","tags":["suspicious"],"subject":{"name":"John Doe"}}`
	c, _ := f.request(http.MethodPost, "/api/v1/stories", body, author, models.RoleUser)

	err := f.handler.CreateStory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateStoryRequiresSubjectIdentifier(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")

	body := `{"content":"story","tags":["unsure"],"subject":{}}`
	c, _ := f.request(http.MethodPost, "/api/v1/stories", body, author, models.RoleUser)

	err := f.handler.CreateStory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestStoryContentLimitIsAuthoritative(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")

	// 1001 characters is rejected regardless of what any client editor allows.
	long := strings.Repeat("x", models.StoryContentMaxLen+1)
	body := `{"content":"` + long + `","tags":["red_flag"],"subject":{"name":"John Doe"}}`
	c, _ := f.request(http.MethodPost, "/api/v1/stories", body, author, models.RoleUser)

	err := f.handler.CreateStory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	var count int64
	require.NoError(t, f.db.Model(&models.Story{}).Count(&count).Error)
	assert.Zero(t, count)

	// Exactly at the limit is accepted.
	exact := strings.Repeat("x", models.StoryContentMaxLen)
	body = `{"content":"` + exact + `","tags":["red_flag"],"subject":{"name":"John Doe"}}`
	c, rec := f.request(http.MethodPost, "/api/v1/stories", body, author, models.RoleUser)
	require.NoError(t, f.handler.CreateStory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The same limit guards author edits.
	story := f.seedStory(t, author, "short")
	body = `{"content":"` + long + `"}`
	c, _ = f.request(http.MethodPut, "/", body, author, models.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(story.ID))

	err = f.handler.UpdateStory(c)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	unchanged, err := f.stories.GetStoryByID(story.ID)
	require.NoError(t, err)
	assert.Equal(t, "short", unchanged.Content)
}

func TestUpdateStoryByAuthor(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")
	story := f.seedStory(t, author, "original content")

	body := `{"content":"corrected content"}`
	c, rec := f.request(http.MethodPut, "/", body, author, models.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(story.ID))

	require.NoError(t, f.handler.UpdateStory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := f.stories.GetStoryByID(story.ID)
	require.NoError(t, err)
	assert.Equal(t, "corrected content", updated.Content)
}

func TestUpdateStoryByNonOwnerIsForbidden(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")
	intruder := f.seedUser(t, "beth")
	story := f.seedStory(t, author, "original content")

	body := `{"content":"defaced"}`
	c, _ := f.request(http.MethodPut, "/", body, intruder, models.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(story.ID))

	err := f.handler.UpdateStory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	// The story is untouched.
	unchanged, err := f.stories.GetStoryByID(story.ID)
	require.NoError(t, err)
	assert.Equal(t, "original content", unchanged.Content)
}

func TestDeleteStoryByNonOwnerIsForbidden(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")
	intruder := f.seedUser(t, "beth")
	story := f.seedStory(t, author, "content")

	c, _ := f.request(http.MethodDelete, "/", "", intruder, models.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(story.ID))

	err := f.handler.DeleteStory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestDeleteStoryByAdmin(t *testing.T) {
	f := newStoryHandlerFixture(t)
	author := f.seedUser(t, "amina")
	admin := f.seedUser(t, "mod")
	story := f.seedStory(t, author, "content")

	c, rec := f.request(http.MethodDelete, "/", "", admin, models.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(story.ID))

	require.NoError(t, f.handler.DeleteStory(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := f.stories.GetStoryByID(story.ID)
	assert.Error(t, err)
}
