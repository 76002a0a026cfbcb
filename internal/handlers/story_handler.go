package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	guyRepository   repositories.GuyRepository
	userRepository  repositories.UserRepository
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, guyRepo repositories.GuyRepository, userRepo repositories.UserRepository) *StoryHandler {
	return &StoryHandler{
		storyRepository: storyRepo,
		guyRepository:   guyRepo,
		userRepository:  userRepo,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories", h.CreateStory)
	g.PUT("/stories/:id", h.UpdateStory)
	g.DELETE("/stories/:id", h.DeleteStory)
	g.POST("/stories/:id/react", h.ReactToStory)
	g.DELETE("/stories/:id/react", h.RemoveReaction)
	g.GET("/guys/search", h.SearchGuys)
	g.GET("/guys/:id/stories", h.GetStoriesByGuy)
}

// StoryResponse is the enriched story response
type StoryResponse struct {
	Story        models.Story             `json:"story"`
	Author       models.UserCompact       `json:"author"`
	Guy          *models.Guy              `json:"guy,omitempty"`
	Reactions    map[models.TagType]int64 `json:"reactions"`
	CommentCount int64                    `json:"comment_count"`
}

func (h *StoryHandler) buildStoryResponse(story *models.Story) (*StoryResponse, error) {
	resp := &StoryResponse{Story: *story}

	if author, err := h.userRepository.GetUserByID(story.UserID); err == nil {
		resp.Author = author.ToCompact()
	}
	if guy, err := h.guyRepository.GetGuyByID(story.GuyID); err == nil {
		resp.Guy = guy
	}

	counts, err := h.storyRepository.GetReactionCounts(story.ID)
	if err != nil {
		return nil, err
	}
	resp.Reactions = counts

	commentCount, err := h.storyRepository.GetCommentCount(story.ID)
	if err != nil {
		return nil, err
	}
	resp.CommentCount = commentCount

	return resp, nil
}

// GetStories returns stories newest-first with limit/offset pagination
func (h *StoryHandler) GetStories(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	stories, err := h.storyRepository.GetStories(limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]StoryResponse, 0, len(stories))
	for i := range stories {
		resp, err := h.buildStoryResponse(&stories[i])
		if err != nil {
			return respondError(c, err)
		}
		responses = append(responses, *resp)
	}

	return respondOK(c, http.StatusOK, echo.Map{"stories": responses})
}

// GetStory returns a single story with its reaction and comment counts
func (h *StoryHandler) GetStory(c echo.Context) error {
	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	story, err := h.storyRepository.GetStoryByID(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.buildStoryResponse(story)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"story": resp})
}

// CreateStory shares a new story. The subject is resolved by fuzzy match
// against existing guys; a miss creates a fresh row attributed to the
// caller. Clients may send several tags but only the first is stored.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !req.Subject.HasIdentifier() {
		return echo.NewHTTPError(http.StatusBadRequest, "Subject needs at least a name, phone or socials")
	}

	guy, err := h.guyRepository.FindOrCreate(req.Subject, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	story := &models.Story{
		GuyID:    guy.ID,
		UserID:   claims.UserID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		TagType:  req.Tags[0],
	}
	if err := h.storyRepository.CreateStory(story); err != nil {
		return respondError(c, err)
	}

	resp, err := h.buildStoryResponse(story)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, echo.Map{"story": resp})
}

// UpdateStory edits a story. Only the author may update; admins use the
// moderation force-edit endpoint instead.
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	var req models.UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.storyRepository.GetStoryByID(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}
	if story.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this story")
	}

	story.Content = req.Content
	if req.ImageURL != "" {
		story.ImageURL = req.ImageURL
	}
	if req.TagType != "" {
		story.TagType = req.TagType
	}
	if err := h.storyRepository.UpdateStory(story); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"story": story})
}

// DeleteStory removes a story along with its comments and reactions.
// Allowed for the author or an admin.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	story, err := h.storyRepository.GetStoryByID(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}
	if story.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this story")
	}

	if err := h.storyRepository.DeleteStoryCascade(uint(storyID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReactToStory adds or replaces the caller's reaction to a story
func (h *StoryHandler) ReactToStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.storyRepository.GetStoryByID(uint(storyID)); err != nil {
		return respondError(c, err)
	}

	reaction := &models.StoryReaction{
		StoryID:      uint(storyID),
		UserID:       claims.UserID,
		ReactionType: req.ReactionType,
	}
	if err := h.storyRepository.UpsertReaction(reaction); err != nil {
		return respondError(c, err)
	}

	counts, err := h.storyRepository.GetReactionCounts(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"reactions": counts})
}

// RemoveReaction deletes the caller's reaction; absent reactions are a no-op
func (h *StoryHandler) RemoveReaction(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	if err := h.storyRepository.RemoveReaction(uint(storyID), claims.UserID); err != nil {
		return respondError(c, err)
	}

	counts, err := h.storyRepository.GetReactionCounts(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"reactions": counts})
}

// SearchGuys searches story subjects before submitting a new story
func (h *StoryHandler) SearchGuys(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	guys, err := h.guyRepository.SearchGuys(query)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"guys": guys})
}

// GetStoriesByGuy lists every story about one subject
func (h *StoryHandler) GetStoriesByGuy(c echo.Context) error {
	guyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid guy ID")
	}

	if _, err := h.guyRepository.GetGuyByID(uint(guyID)); err != nil {
		return respondError(c, err)
	}

	stories, err := h.storyRepository.GetStoriesByGuyID(uint(guyID))
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]StoryResponse, 0, len(stories))
	for i := range stories {
		resp, err := h.buildStoryResponse(&stories[i])
		if err != nil {
			return respondError(c, err)
		}
		responses = append(responses, *resp)
	}
	return respondOK(c, http.StatusOK, echo.Map{"stories": responses})
}
