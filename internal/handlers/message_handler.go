package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
)

// MessageHandler handles private-messaging HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/conversations/:user_id", h.GetConversation)
}

// SendMessage sends a private message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.ReceiverID == claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	// Receiver must exist
	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		return respondError(c, err)
	}

	message := &models.Message{
		SenderID:   claims.UserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, echo.Map{"message": message})
}

// GetConversation returns the full exchange with one user, oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	messages, err := h.messageRepository.GetConversation(claims.UserID, uint(otherID))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"messages": messages})
}

// GetConversations lists the caller's conversations, one entry per
// counterparty carrying the most recent message
func (h *MessageHandler) GetConversations(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	latest, err := h.messageRepository.GetLatestPerCounterparty(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	previews := make([]models.ConversationPreview, 0, len(latest))
	for _, m := range latest {
		otherID := m.SenderID
		if otherID == claims.UserID {
			otherID = m.ReceiverID
		}
		preview := models.ConversationPreview{LastMessage: m}
		if other, err := h.userRepository.GetUserByID(otherID); err == nil {
			preview.Counterparty = other.ToCompact()
		}
		previews = append(previews, preview)
	}
	return respondOK(c, http.StatusOK, echo.Map{"conversations": previews})
}
