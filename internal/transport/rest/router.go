package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/cloudmorphix/console/internal/audit"
	"github.com/cloudmorphix/console/internal/auth"
	"github.com/cloudmorphix/console/internal/company"
	"github.com/cloudmorphix/console/internal/contact"
	"github.com/cloudmorphix/console/internal/dashboard"
	"github.com/cloudmorphix/console/internal/invite"
	"github.com/cloudmorphix/console/internal/role"
	"github.com/cloudmorphix/console/internal/transport/middleware"
	"github.com/cloudmorphix/console/internal/transport/swagger"
	"github.com/cloudmorphix/console/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth      *auth.Handler
	Company   *company.Handler
	Role      *role.Handler
	User      *user.Handler
	Invite    *invite.Handler
	Audit     *audit.Handler
	Contact   *contact.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	rbac := auth.NewRBACAuthorization(logger)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		// Public self-service registration (company + first admin)
		if h.Company != nil {
			r.Post("/register", h.Company.Register)
		}

		// Public contact form submission
		if h.Contact != nil {
			r.Post("/contact", h.Contact.Submit)
		}

		// Public invite landing routes; the invite page is reached from an
		// email link before the invitee has any session.
		if h.Invite != nil {
			r.Get("/companies/{companyID}/invites/{inviteID}", h.Invite.Get)
			r.Post("/companies/{companyID}/invites/{inviteID}/accept", h.Invite.Accept)
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				pr.Get("/me", h.Auth.Me)
				pr.Post("/auth/password", h.Auth.ChangePassword)

				if h.User != nil {
					pr.Patch("/me/profile", h.User.UpdateProfile)
				}

				if h.Dashboard != nil {
					pr.Group(func(dr chi.Router) {
						dr.Use(rbac.RequirePermission(auth.PermViewDashboard))
						dr.Get("/me/dashboard", h.Dashboard.MyDashboard)
					})
				}

				// Platform operator routes
				pr.Group(func(opr chi.Router) {
					opr.Use(rbac.RequirePlatformOperator())
					if h.Company != nil {
						opr.Get("/companies", h.Company.List)
					}
					if h.Contact != nil {
						opr.Get("/contacts", h.Contact.List)
					}
				})

				// Tenant-scoped routes: path company id must match the
				// caller's resolved company unless they operate the platform.
				pr.Route("/companies/{companyID}", func(cr chi.Router) {
					cr.Use(rbac.RequireCompanyScope())

					if h.Company != nil {
						cr.Get("/", h.Company.Get)
						cr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequirePermission(auth.PermManageUsers))
							mr.Patch("/", h.Company.Update)
						})
					}

					if h.Role != nil {
						cr.Get("/roles", h.Role.List)
						cr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequirePermission(auth.PermManageRoles))
							mr.Post("/roles", h.Role.Create)
						})
					}

					if h.User != nil {
						cr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequirePermission(auth.PermManageUsers))
							mr.Get("/users", h.User.List)
							mr.Post("/users", h.User.Add)
							mr.Patch("/users/{userID}", h.User.ChangeRole)
							mr.Delete("/users/{userID}", h.User.Remove)
						})
					}

					if h.Invite != nil {
						cr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequirePermission(auth.PermManageUsers))
							mr.Get("/invites", h.Invite.List)
							mr.Post("/invites", h.Invite.Create)
						})
					}

					if h.Audit != nil {
						cr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequirePermission(auth.PermManageUsers))
							mr.Get("/audit", h.Audit.List)
						})
					}
				})
			})
		}
	})
}
