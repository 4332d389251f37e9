package postgres

import (
	"github.com/cloudmorphix/console/internal/audit"
	auditDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository implements the audit.Repository interface using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(entry *auditDatamodel.Entry) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) ListByCompany(companyID string, limit, offset int) ([]*auditDatamodel.Entry, error) {
	var models []*auditDatamodel.Entry
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	return models, err
}
