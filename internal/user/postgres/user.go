package postgres

import (
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

// CreateWithLookup writes the profile and its lookup record in one
// transaction so resolution never sees a half-created membership.
func (r *UserRepository) CreateWithLookup(profile *userDatamodel.User, lookup *userDatamodel.CompanyLookup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Create(lookup).Error
	})
}

// GetByID returns (nil, nil) when the profile does not exist.
func (r *UserRepository) GetByID(userID string) (*userDatamodel.User, error) {
	var model userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *UserRepository) ListByCompany(companyID string) ([]*userDatamodel.User, error) {
	var models []*userDatamodel.User
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&models).Error
	return models, err
}

func (r *UserRepository) Update(profile *userDatamodel.User) error {
	return r.db.Save(profile).Error
}

// DeleteWithLookup removes the profile and the lookup record together. The
// identity account is deliberately left alone.
func (r *UserRepository) DeleteWithLookup(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).Delete(&userDatamodel.User{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&userDatamodel.CompanyLookup{}).Error
	})
}
