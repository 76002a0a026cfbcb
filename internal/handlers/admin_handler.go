package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/email"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// AdminHandler exposes the moderation console operations. Every route here
// sits behind the admin guard; the handler itself only implements actions.
type AdminHandler struct {
	userRepository     repositories.UserRepository
	storyRepository    repositories.StoryRepository
	commentRepository  repositories.CommentRepository
	messageRepository  repositories.MessageRepository
	campaignRepository repositories.CampaignRepository
	campaignSender     *email.CampaignSender
	logger             *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo repositories.UserRepository,
	storyRepo repositories.StoryRepository,
	commentRepo repositories.CommentRepository,
	messageRepo repositories.MessageRepository,
	campaignRepo repositories.CampaignRepository,
	campaignSender *email.CampaignSender,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		userRepository:     userRepo,
		storyRepository:    storyRepo,
		commentRepository:  commentRepo,
		messageRepository:  messageRepo,
		campaignRepository: campaignRepo,
		campaignSender:     campaignSender,
		logger:             logger,
	}
}

// RegisterAdminRoutes registers moderation routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/admin/verifications", h.ListPendingVerifications)
	g.POST("/admin/users/:id/approve", h.ApproveUser)
	g.POST("/admin/users/:id/reject", h.RejectUser)
	g.DELETE("/admin/stories/:id", h.DeleteStory)
	g.PUT("/admin/stories/:id", h.ForceEditStory)
	g.DELETE("/admin/comments/:id", h.DeleteComment)
	g.GET("/admin/stats", h.GetStats)
	g.POST("/admin/campaigns", h.CreateCampaign)
	g.POST("/admin/campaigns/:id/send", h.SendCampaign)
}

// ListPendingVerifications pages through users awaiting ID review
func (h *AdminHandler) ListPendingVerifications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.userRepository.GetPendingVerifications(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// ApproveUser marks a user's identity verification as approved
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.ApproveUser(uint(userID))
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Info("user verification approved",
		zap.Uint("user_id", user.ID),
		zap.String("admin", claims.Email))
	return respondOK(c, http.StatusOK, echo.Map{"user": user})
}

// RejectUser marks a user's identity verification as rejected
func (h *AdminHandler) RejectUser(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req models.RejectUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.RejectUser(uint(userID), req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Info("user verification rejected",
		zap.Uint("user_id", user.ID),
		zap.String("admin", claims.Email))
	return respondOK(c, http.StatusOK, echo.Map{"user": user})
}

// DeleteStory removes any story with its comments and reactions
func (h *AdminHandler) DeleteStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	if err := h.storyRepository.DeleteStoryCascade(uint(storyID)); err != nil {
		return respondError(c, err)
	}

	h.logger.Info("story removed by moderation",
		zap.Uint("story_id", uint(storyID)),
		zap.String("admin", claims.Email))
	return c.NoContent(http.StatusNoContent)
}

// ForceEditStory rewrites a story's content regardless of authorship
func (h *AdminHandler) ForceEditStory(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	var req models.ForceEditStoryRequest
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

	story.Content = req.Content
	if err := h.storyRepository.UpdateStory(story); err != nil {
		return respondError(c, err)
	}

	h.logger.Info("story content edited by moderation",
		zap.Uint("story_id", story.ID),
		zap.String("admin", claims.Email))
	return respondOK(c, http.StatusOK, echo.Map{"story": story})
}

// DeleteComment removes any comment
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if _, err := h.commentRepository.GetCommentByID(uint(commentID)); err != nil {
		return respondError(c, err)
	}
	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats aggregates the moderation dashboard numbers
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats := models.AdminStats{}
	var err error

	if stats.PendingUsers, err = h.userRepository.CountByVerificationStatus(models.VerificationPending); err != nil {
		return respondError(c, err)
	}
	if stats.VerifiedUsers, err = h.userRepository.CountByVerificationStatus(models.VerificationApproved); err != nil {
		return respondError(c, err)
	}
	if stats.RejectedUsers, err = h.userRepository.CountByVerificationStatus(models.VerificationRejected); err != nil {
		return respondError(c, err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if stats.WeeklySignups, err = h.userRepository.CountCreatedSince(weekAgo); err != nil {
		return respondError(c, err)
	}
	if stats.WeeklyStories, err = h.storyRepository.CountCreatedSince(weekAgo); err != nil {
		return respondError(c, err)
	}
	if stats.WeeklyMessages, err = h.messageRepository.CountCreatedSince(weekAgo); err != nil {
		return respondError(c, err)
	}

	if stats.AvgVerificationHours, err = h.userRepository.AvgVerificationHours(); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"stats": stats})
}

// CreateCampaign stores a campaign targeting every user with an email
func (h *AdminHandler) CreateCampaign(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	users, err := h.userRepository.SearchUsers("")
	if err != nil {
		return respondError(c, err)
	}

	campaign := &models.Campaign{
		Subject:         req.Subject,
		Body:            req.Body,
		CreatedByUserID: claims.UserID,
	}
	recipients := email.BuildRecipients(users)
	if err := h.campaignRepository.CreateCampaign(campaign, recipients); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, echo.Map{
		"campaign":   campaign,
		"recipients": len(recipients),
	})
}

// SendCampaign delivers a campaign's pending recipients
func (h *AdminHandler) SendCampaign(c echo.Context) error {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid campaign ID")
	}

	result, err := h.campaignSender.SendCampaign(uint(campaignID))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"result": result})
}
