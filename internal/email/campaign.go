package email

import (
	"errors"
	"time"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"go.uber.org/zap"
)

// CampaignSender pushes a campaign out in paced batches. Each recipient is
// attempted up to MaxAttempts times with a linearly growing backoff, and is
// only marked sent after the underlying send succeeded. A failure on one
// recipient never blocks the rest of the batch.
type CampaignSender struct {
	campaignRepo repositories.CampaignRepository
	sender       Sender
	logger       *zap.Logger

	BatchSize    int
	EmailDelay   time.Duration
	BatchDelay   time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
}

// NewCampaignSender creates a CampaignSender with the default pacing
func NewCampaignSender(campaignRepo repositories.CampaignRepository, sender Sender, logger *zap.Logger) *CampaignSender {
	return &CampaignSender{
		campaignRepo: campaignRepo,
		sender:       sender,
		logger:       logger,
		BatchSize:    10,
		EmailDelay:   100 * time.Millisecond,
		BatchDelay:   200 * time.Millisecond,
		MaxAttempts:  3,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// CampaignResult summarizes a send run.
type CampaignResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendCampaign delivers every pending recipient of the campaign.
func (s *CampaignSender) SendCampaign(campaignID uint) (*CampaignResult, error) {
	if s.sender == nil {
		return nil, errors.New("email sending is not configured")
	}

	campaign, err := s.campaignRepo.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.campaignRepo.GetPendingRecipients(campaignID)
	if err != nil {
		return nil, err
	}

	result := &CampaignResult{}
	for i, recipient := range recipients {
		if i > 0 {
			if i%s.BatchSize == 0 {
				time.Sleep(s.BatchDelay)
			} else {
				time.Sleep(s.EmailDelay)
			}
		}

		attempts, err := s.sendWithRetry(recipient.Email, campaign.Subject, campaign.Body)
		if err != nil {
			result.Failed++
			s.logger.Warn("campaign recipient delivery failed",
				zap.Uint("campaign_id", campaignID),
				zap.Uint("recipient_id", recipient.ID),
				zap.Int("attempts", attempts),
				zap.Error(err))
			if markErr := s.campaignRepo.MarkRecipientFailed(recipient.ID, attempts, err.Error()); markErr != nil {
				s.logger.Error("failed to record delivery failure", zap.Error(markErr))
			}
			continue
		}

		result.Sent++
		if markErr := s.campaignRepo.MarkRecipientSent(recipient.ID, attempts); markErr != nil {
			s.logger.Error("failed to record delivery success", zap.Error(markErr))
		}
	}

	s.logger.Info("campaign send finished",
		zap.Uint("campaign_id", campaignID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	return result, nil
}

// sendWithRetry attempts one delivery with linearly increasing backoff:
// first retry waits RetryBackoff, the second 2*RetryBackoff, and so on.
func (s *CampaignSender) sendWithRetry(to, subject, body string) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		err := s.sender.Send(to, subject, body)
		if err == nil {
			return attempt, nil
		}
		lastErr = err
		if attempt < s.MaxAttempts {
			time.Sleep(time.Duration(attempt) * s.RetryBackoff)
		}
	}
	return s.MaxAttempts, lastErr
}

// BuildRecipients expands a user list into pending recipient rows.
func BuildRecipients(users []models.User) []models.CampaignRecipient {
	recipients := make([]models.CampaignRecipient, 0, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		recipients = append(recipients, models.CampaignRecipient{
			UserID: u.ID,
			Email:  u.Email,
			Status: models.RecipientPending,
		})
	}
	return recipients
}
