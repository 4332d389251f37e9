package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/pkg/retry"
)

type UserDirectory interface {
	GetByID(userID string) (*userDatamodel.User, error)
}

type CompanyDirectory interface {
	GetByID(id string) (*companyDatamodel.Company, error)
}

// Config controls whether a permission-denied read of the dashboard URL is
// retried. Access-rule changes can lag behind the grant that allowed the
// caller in; retrying papers over that window, surfacing immediately does
// not. Neither is obviously right, so it is a deployment choice.
type Config struct {
	RetryOnPermissionDenied bool
	RetryAttempts           int
	RetryDelay              time.Duration
}

type Service struct {
	users     UserDirectory
	companies CompanyDirectory
	cfg       Config
	logger    *slog.Logger
}

func NewService(users UserDirectory, companies CompanyDirectory, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		users:     users,
		companies: companies,
		cfg:       cfg,
		logger:    logger,
	}
}

// URLFor resolves the dashboard URL for the caller: their own assigned URL
// if one is set, otherwise their company's. The URL is an opaque string;
// nothing inspects or validates its content.
func (s *Service) URLFor(ctx context.Context, profile *auth.AccessProfile) (string, error) {
	if profile == nil || !profile.Can(auth.PermViewDashboard) {
		return "", internal.ErrPermissionDenied
	}

	var url string
	fetch := func() error {
		resolved, err := s.resolveURL(profile)
		if err != nil {
			return err
		}
		url = resolved
		return nil
	}

	var err error
	if s.cfg.RetryOnPermissionDenied {
		err = retry.Do(ctx, s.cfg.RetryAttempts, s.cfg.RetryDelay, internal.IsPermissionDenied, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		s.logger.Error("dashboard URL resolution failed", "error", err, "user_id", profile.UserID)
		return "", err
	}

	return url, nil
}

func (s *Service) resolveURL(profile *auth.AccessProfile) (string, error) {
	u, err := s.users.GetByID(profile.UserID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if u != nil && u.DashboardURL != nil && *u.DashboardURL != "" {
		return *u.DashboardURL, nil
	}

	c, err := s.companies.GetByID(profile.CompanyID)
	if err != nil {
		return "", fmt.Errorf("get company: %w", err)
	}
	if c != nil && c.DashboardURL != nil && *c.DashboardURL != "" {
		return *c.DashboardURL, nil
	}

	return "", internal.NewNotFoundError("No dashboard is configured", internal.ErrCodeNoDashboard)
}
