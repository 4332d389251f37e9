package postgres

import (
	"github.com/cloudmorphix/console/internal/role"

	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	"gorm.io/gorm"
)

// RoleRepository implements the role.Repository interface using GORM
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.Repository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(model *roleDatamodel.Role) error {
	return r.db.Create(model).Error
}

// GetByName matches the role name exactly; absence is (nil, nil).
func (r *RoleRepository) GetByName(companyID, name string) (*roleDatamodel.Role, error) {
	var model roleDatamodel.Role
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

// NameExists checks the per-company unique-name rule case-insensitively.
func (r *RoleRepository) NameExists(companyID, name string) (bool, error) {
	var count int64
	err := r.db.Model(&roleDatamodel.Role{}).
		Where("company_id = ? AND LOWER(name) = LOWER(?)", companyID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RoleRepository) ListByCompany(companyID string) ([]*roleDatamodel.Role, error) {
	var models []*roleDatamodel.Role
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&models).Error
	return models, err
}
