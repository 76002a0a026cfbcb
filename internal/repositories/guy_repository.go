package repositories

import (
	"strings"

	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// GuyRepository defines the interface for story-subject data operations
type GuyRepository interface {
	GetGuyByID(id uint) (*models.Guy, error)
	FindMatch(subject models.GuySubject) (*models.Guy, error)
	FindOrCreate(subject models.GuySubject, createdByUserID uint) (*models.Guy, error)
	SearchGuys(query string) ([]models.Guy, error)
}

// PostgresGuyRepository implements GuyRepository for PostgreSQL
type PostgresGuyRepository struct {
	db *gorm.DB
}

// NewPostgresGuyRepository creates a new PostgresGuyRepository
func NewPostgresGuyRepository(db *gorm.DB) *PostgresGuyRepository {
	return &PostgresGuyRepository{db: db}
}

// GetGuyByID retrieves a subject row by ID
func (r *PostgresGuyRepository) GetGuyByID(id uint) (*models.Guy, error) {
	var guy models.Guy
	if err := r.db.First(&guy, id).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &guy, nil
}

// FindMatch looks for an existing subject by case-insensitive substring match
// on name, phone or socials. The first match wins. This is best-effort dedup:
// fuzzy matching cannot be backed by a uniqueness constraint, so two
// concurrent submissions about the same person can still both miss.
func (r *PostgresGuyRepository) FindMatch(subject models.GuySubject) (*models.Guy, error) {
	return findMatchTx(r.db, subject)
}

func findMatchTx(tx *gorm.DB, subject models.GuySubject) (*models.Guy, error) {
	q := tx.Model(&models.Guy{})
	matched := false
	if subject.Name != "" {
		q = q.Or("LOWER(name) LIKE LOWER(?)", "%"+strings.TrimSpace(subject.Name)+"%")
		matched = true
	}
	if subject.Phone != "" {
		q = q.Or("phone LIKE ?", "%"+strings.TrimSpace(subject.Phone)+"%")
		matched = true
	}
	if subject.Socials != "" {
		q = q.Or("LOWER(socials) LIKE LOWER(?)", "%"+strings.TrimSpace(subject.Socials)+"%")
		matched = true
	}
	if !matched {
		return nil, apperrors.Validation("subject needs a name, phone or socials")
	}

	var guy models.Guy
	if err := q.Order("id asc").First(&guy).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return &guy, nil
}

// FindOrCreate resolves the subject of a new story: reuse the first fuzzy
// match, otherwise create a fresh row attributed to the submitting user.
// Both steps run inside one transaction to narrow the read-then-write window.
func (r *PostgresGuyRepository) FindOrCreate(subject models.GuySubject, createdByUserID uint) (*models.Guy, error) {
	if !subject.HasIdentifier() {
		return nil, apperrors.Validation("subject needs a name, phone or socials")
	}

	var guy *models.Guy
	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := findMatchTx(tx, subject)
		if err == nil {
			guy = found
			return nil
		}
		if !apperrors.IsNotFound(err) {
			return err
		}

		created := &models.Guy{
			Name:            strings.TrimSpace(subject.Name),
			Phone:           strings.TrimSpace(subject.Phone),
			Socials:         strings.TrimSpace(subject.Socials),
			Location:        strings.TrimSpace(subject.Location),
			Age:             subject.Age,
			CreatedByUserID: createdByUserID,
		}
		if err := tx.Create(created).Error; err != nil {
			return apperrors.Classify(err)
		}
		guy = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return guy, nil
}

// SearchGuys searches subjects by name, phone or socials (case-insensitive)
func (r *PostgresGuyRepository) SearchGuys(query string) ([]models.Guy, error) {
	var guys []models.Guy
	pattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ? OR LOWER(socials) LIKE LOWER(?)", pattern, pattern, pattern).
		Find(&guys).Error
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	return guys, nil
}
