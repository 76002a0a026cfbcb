package repositories

import (
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for private-message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(userID, otherUserID uint) ([]models.Message, error)
	GetLatestPerCounterparty(userID uint) ([]models.Message, error)
	CountCreatedSince(since time.Time) (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage stores a new message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return apperrors.Classify(r.db.Create(message).Error)
}

// GetConversation returns every message between the two users in
// chronological order. Fetched newest-first, then reversed for display.
func (r *PostgresMessageRepository) GetConversation(userID, otherUserID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetLatestPerCounterparty scans every message involving the user,
// newest-first, and keeps the first (latest) one seen per counterparty.
// A linear dedup over the full result set, not a materialized view.
func (r *PostgresMessageRepository) GetLatestPerCounterparty(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}

	seen := make(map[uint]bool)
	latest := make([]models.Message, 0)
	for _, m := range messages {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		latest = append(latest, m)
	}
	return latest, nil
}

// CountCreatedSince counts messages created at or after the given time
func (r *PostgresMessageRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return count, nil
}
