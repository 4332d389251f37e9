package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
)

// RBACAuthorization gates routes on the resolved access profile. All checks
// go through AccessProfile.Can; nothing inspects role names.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequirePermission rejects callers whose profile lacks the permission.
// Platform operators pass: cross-tenant administration implies every flag.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := ProfileFromContext(r.Context())
			if !ok || profile == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !profile.IsPlatformOperator && !profile.Can(permission) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", profile.UserID,
					"required_permission", permission,
					"user_permissions", profile.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePlatformOperator admits only accounts whose company carries the
// operator flag. The flag is set out-of-band; it is never derived from a
// company's name.
func (ra *RBACAuthorization) RequirePlatformOperator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := ProfileFromContext(r.Context())
			if !ok || profile == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !profile.IsPlatformOperator {
				ra.logger.WarnContext(r.Context(), "access denied: platform operator required",
					"user_id", profile.UserID, "company_id", profile.CompanyID)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompanyScope pins the {companyID} path parameter to the caller's
// own company. Platform operators may cross tenants.
func (ra *RBACAuthorization) RequireCompanyScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := ProfileFromContext(r.Context())
			if !ok || profile == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			companyID := chi.URLParam(r, "companyID")
			if companyID == "" {
				http.Error(w, "Bad request: missing company id", http.StatusBadRequest)
				return
			}

			if !profile.IsPlatformOperator && profile.CompanyID != companyID {
				ra.logger.WarnContext(r.Context(), "access denied: cross-tenant request",
					"user_id", profile.UserID,
					"user_company_id", profile.CompanyID,
					"requested_company_id", companyID)
				http.Error(w, "Forbidden: resource belongs to another company", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
