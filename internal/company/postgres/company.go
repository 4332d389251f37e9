package postgres

import (
	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/company"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	"gorm.io/gorm"
)

// CompanyRepository implements the company.Repository interface using GORM
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{db: db}
}

// CreateWithAdmin writes the whole registration unit in one transaction:
// identity account, company, seeded roles, admin profile, lookup record.
// A taken email aborts the transaction with internal.ErrDuplicateEmail.
func (r *CompanyRepository) CreateWithAdmin(reg *company.Registration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&identityDatamodel.Account{}).
			Where("LOWER(email) = LOWER(?)", reg.Account.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrDuplicateEmail
		}

		if err := tx.Create(reg.Account).Error; err != nil {
			return err
		}
		if err := tx.Create(reg.Company).Error; err != nil {
			return err
		}
		for _, role := range reg.Roles {
			if err := tx.Create(role).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(reg.Admin).Error; err != nil {
			return err
		}
		return tx.Create(reg.Lookup).Error
	})
}

// GetByID returns (nil, nil) when the company does not exist.
func (r *CompanyRepository) GetByID(id string) (*companyDatamodel.Company, error) {
	var model companyDatamodel.Company
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *CompanyRepository) Update(model *companyDatamodel.Company) error {
	return r.db.Save(model).Error
}

func (r *CompanyRepository) List(limit, offset int) ([]*companyDatamodel.Company, error) {
	var models []*companyDatamodel.Company
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	return models, err
}
