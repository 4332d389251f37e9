package postgres

import (
	"github.com/cloudmorphix/console/internal/contact"
	contactDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/contact"
	"gorm.io/gorm"
)

// ContactRepository implements the contact.Repository interface using GORM
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.Repository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(sub *contactDatamodel.Submission) error {
	return r.db.Create(sub).Error
}

func (r *ContactRepository) List(limit, offset int) ([]*contactDatamodel.Submission, error) {
	var models []*contactDatamodel.Submission
	err := r.db.Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	return models, err
}
