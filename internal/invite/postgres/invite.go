package postgres

import (
	"time"

	"github.com/cloudmorphix/console/internal"
	inviteDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/invite"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/invite"
	"gorm.io/gorm"
)

// InviteRepository implements the invite.Repository interface using GORM
type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) invite.Repository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(inv *inviteDatamodel.Invite) error {
	return r.db.Create(inv).Error
}

// GetByID is company-scoped; (nil, nil) when absent.
func (r *InviteRepository) GetByID(companyID, inviteID string) (*inviteDatamodel.Invite, error) {
	var model inviteDatamodel.Invite
	err := r.db.Where("id = ? AND company_id = ?", inviteID, companyID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *InviteRepository) ListByCompany(companyID string, pendingOnly bool) ([]*inviteDatamodel.Invite, error) {
	query := r.db.Where("company_id = ?", companyID)
	if pendingOnly {
		query = query.Where("status = ?", inviteDatamodel.StatusPending)
	}

	var models []*inviteDatamodel.Invite
	err := query.Order("created_at DESC").Find(&models).Error
	return models, err
}

// Accept flips the invite to accepted and creates the member records in one
// transaction. The status guard runs inside the transaction, so a concurrent
// second accept loses the race and gets internal.ErrInviteAccepted instead
// of creating a duplicate member.
func (r *InviteRepository) Accept(inviteID string, acceptedAt time.Time, profile *userDatamodel.User, lookup *userDatamodel.CompanyLookup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&inviteDatamodel.Invite{}).
			Where("id = ? AND status = ?", inviteID, inviteDatamodel.StatusPending).
			Updates(map[string]interface{}{
				"status":              inviteDatamodel.StatusAccepted,
				"accepted_at":         acceptedAt,
				"accepted_by_user_id": profile.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInviteAccepted
		}

		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Create(lookup).Error
	})
}
