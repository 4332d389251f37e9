package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// ResolvedCompany is the slice of company state the resolver needs.
type ResolvedCompany struct {
	ID                 string
	Name               string
	IsActive           bool
	IsPlatformOperator bool
}

// ResolvedUser is the company-scoped profile slice the resolver needs.
type ResolvedUser struct {
	ID       string
	FullName string
	Email    string
	RoleName string
	IsActive bool
}

// ResolverStore reads the documents the resolver joins. Each method returns
// (nil, nil) when the document is absent; errors are reserved for store
// failures, which callers must treat as distinct from not-found.
type ResolverStore interface {
	GetCompanyIDForUser(ctx context.Context, userID string) (string, error)
	GetCompany(ctx context.Context, companyID string) (*ResolvedCompany, error)
	GetUser(ctx context.Context, companyID, userID string) (*ResolvedUser, error)
	GetRolePermissions(ctx context.Context, companyID, roleName string) ([]string, bool, error)
}

// Resolver turns a user id into an access profile. Resolution is a pure
// read: user -> lookup -> company -> role -> permission set, fresh on every
// call. A missing lookup, company, or user document resolves to
// (nil, nil) — "no profile" — not an error. A missing role resolves to the
// empty permission set.
type Resolver struct {
	store  ResolverStore
	logger *slog.Logger
}

func NewResolver(store ResolverStore, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, userID string) (*AccessProfile, error) {
	if userID == "" {
		return nil, nil
	}

	companyID, err := r.store.GetCompanyIDForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve lookup for %s: %w", userID, err)
	}
	if companyID == "" {
		return nil, nil
	}

	company, err := r.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolve company %s: %w", companyID, err)
	}
	if company == nil {
		r.logger.Warn("lookup record points at missing company", "user_id", userID, "company_id", companyID)
		return nil, nil
	}

	user, err := r.store.GetUser(ctx, companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	if user == nil {
		return nil, nil
	}

	permissions, found, err := r.store.GetRolePermissions(ctx, companyID, user.RoleName)
	if err != nil {
		return nil, fmt.Errorf("resolve role %q: %w", user.RoleName, err)
	}
	if !found {
		// Fail closed: a dangling role name grants nothing.
		r.logger.Warn("user references missing role, resolving empty permission set",
			"user_id", userID, "company_id", companyID, "role", user.RoleName)
		permissions = nil
	}

	return &AccessProfile{
		UserID:             user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		CompanyID:          company.ID,
		CompanyName:        company.Name,
		RoleName:           user.RoleName,
		Permissions:        permissions,
		IsPlatformOperator: company.IsPlatformOperator,
	}, nil
}
