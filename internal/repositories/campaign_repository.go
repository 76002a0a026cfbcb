package repositories

import (
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// CampaignRepository defines the interface for email-campaign data operations
type CampaignRepository interface {
	CreateCampaign(campaign *models.Campaign, recipients []models.CampaignRecipient) error
	GetCampaignByID(id uint) (*models.Campaign, error)
	GetPendingRecipients(campaignID uint) ([]models.CampaignRecipient, error)
	MarkRecipientSent(id uint, attempts int) error
	MarkRecipientFailed(id uint, attempts int, lastError string) error
}

// PostgresCampaignRepository implements CampaignRepository for PostgreSQL
type PostgresCampaignRepository struct {
	db *gorm.DB
}

// NewPostgresCampaignRepository creates a new PostgresCampaignRepository
func NewPostgresCampaignRepository(db *gorm.DB) *PostgresCampaignRepository {
	return &PostgresCampaignRepository{db: db}
}

// CreateCampaign stores a campaign and its recipient rows in one transaction
func (r *PostgresCampaignRepository) CreateCampaign(campaign *models.Campaign, recipients []models.CampaignRecipient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(campaign).Error; err != nil {
			return apperrors.Classify(err)
		}
		for i := range recipients {
			recipients[i].CampaignID = campaign.ID
		}
		if len(recipients) > 0 {
			if err := tx.Create(&recipients).Error; err != nil {
				return apperrors.Classify(err)
			}
		}
		return nil
	})
}

// GetCampaignByID retrieves a campaign by ID
func (r *PostgresCampaignRepository) GetCampaignByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &campaign, nil
}

// GetPendingRecipients lists a campaign's recipients still awaiting delivery
func (r *PostgresCampaignRepository) GetPendingRecipients(campaignID uint) ([]models.CampaignRecipient, error) {
	var recipients []models.CampaignRecipient
	err := r.db.
		Where("campaign_id = ? AND status = ?", campaignID, models.RecipientPending).
		Order("id asc").
		Find(&recipients).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return recipients, nil
}

// MarkRecipientSent records a successful delivery. Callers only invoke this
// after the send itself succeeded.
func (r *PostgresCampaignRepository) MarkRecipientSent(id uint, attempts int) error {
	now := time.Now()
	err := r.db.Model(&models.CampaignRecipient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   models.RecipientSent,
		"attempts": attempts,
		"sent_at":  &now,
	}).Error
	return apperrors.Classify(err)
}

// MarkRecipientFailed records an exhausted delivery attempt
func (r *PostgresCampaignRepository) MarkRecipientFailed(id uint, attempts int, lastError string) error {
	err := r.db.Model(&models.CampaignRecipient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     models.RecipientFailed,
		"attempts":   attempts,
		"last_error": lastError,
	}).Error
	return apperrors.Classify(err)
}
