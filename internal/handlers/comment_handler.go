package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	storyRepository   repositories.StoryRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, storyRepo repositories.StoryRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		storyRepository:   storyRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/stories/:story_id/comments", h.CreateComment)
	g.GET("/stories/:story_id/comments", h.GetCommentsByStoryID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CommentResponse pairs a comment with its author
type CommentResponse struct {
	Comment models.Comment     `json:"comment"`
	Author  models.UserCompact `json:"author"`
}

// CreateComment creates a new comment on a story
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Verify story exists
	if _, err := h.storyRepository.GetStoryByID(uint(storyID)); err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		StoryID: uint(storyID),
		UserID:  claims.UserID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, echo.Map{"comment": comment})
}

// GetCommentsByStoryID retrieves all comments for a story
func (h *CommentHandler) GetCommentsByStoryID(c echo.Context) error {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	if _, err := h.storyRepository.GetStoryByID(uint(storyID)); err != nil {
		return respondError(c, err)
	}

	comments, err := h.commentRepository.GetCommentsByStoryID(uint(storyID))
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp := CommentResponse{Comment: comment}
		if author, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
			resp.Author = author.ToCompact()
		}
		responses = append(responses, resp)
	}
	return respondOK(c, http.StatusOK, echo.Map{"comments": responses})
}

// UpdateComment updates an existing comment; only the author may edit
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return respondError(c, err)
	}
	if comment.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"comment": comment})
}

// DeleteComment deletes a comment; allowed for the author or an admin
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return respondError(c, err)
	}
	if comment.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
