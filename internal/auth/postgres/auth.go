package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudmorphix/console/internal/auth"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository backs both the identity service and the authorization
// resolver against the same database handle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var accountID string
	var passwordHash string
	query := `SELECT id, password_hash FROM auth_accounts WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&accountID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("account not found")
		}
		return "", "", err
	}
	return passwordHash, accountID, nil
}

func (r *Repository) GetPasswordForID(userID string) (string, bool, error) {
	var account identityDatamodel.Account
	err := r.db.Where("id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, fmt.Errorf("account not found")
		}
		return "", false, err
	}
	return account.PasswordHash, account.IsActive, nil
}

func (r *Repository) CreateAccount(id, email, passwordHash string) error {
	var existing int64
	if err := r.db.Model(&identityDatamodel.Account{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return auth.ErrEmailTaken
	}

	now := time.Now()
	account := identityDatamodel.Account{
		ID:           id,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return r.db.Create(&account).Error
}

func (r *Repository) UpdatePassword(userID, passwordHash string) error {
	return r.db.Model(&identityDatamodel.Account{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

// ---- ResolverStore ----

func (r *Repository) GetCompanyIDForUser(ctx context.Context, userID string) (string, error) {
	var lookup userDatamodel.CompanyLookup
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&lookup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return lookup.CompanyID, nil
}

func (r *Repository) GetCompany(ctx context.Context, companyID string) (*auth.ResolvedCompany, error) {
	var company companyDatamodel.Company
	err := r.db.WithContext(ctx).Where("id = ?", companyID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auth.ResolvedCompany{
		ID:                 company.ID,
		Name:               company.Name,
		IsActive:           company.IsActive,
		IsPlatformOperator: company.IsPlatformOperator,
	}, nil
}

func (r *Repository) GetUser(ctx context.Context, companyID, userID string) (*auth.ResolvedUser, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auth.ResolvedUser{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		RoleName: user.RoleName,
		IsActive: user.IsActive,
	}, nil
}

func (r *Repository) GetRolePermissions(ctx context.Context, companyID, roleName string) ([]string, bool, error) {
	var role roleDatamodel.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, roleName).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return role.Permissions, true, nil
}
