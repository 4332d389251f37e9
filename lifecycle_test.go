package main_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/audit"
	auditPostgres "github.com/cloudmorphix/console/internal/audit/postgres"
	"github.com/cloudmorphix/console/internal/auth"
	authPostgres "github.com/cloudmorphix/console/internal/auth/postgres"
	"github.com/cloudmorphix/console/internal/company"
	companyPostgres "github.com/cloudmorphix/console/internal/company/postgres"
	auditDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/audit"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	inviteDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/invite"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/cloudmorphix/console/internal/invite"
	invitePostgres "github.com/cloudmorphix/console/internal/invite/postgres"
	"github.com/cloudmorphix/console/internal/role"
	rolePostgres "github.com/cloudmorphix/console/internal/role/postgres"
	"github.com/cloudmorphix/console/internal/user"
	userPostgres "github.com/cloudmorphix/console/internal/user/postgres"
)

// Full tenant lifecycle against a real database, wired the same way the
// server wires its services.
var _ = Describe("Tenant lifecycle", func() {
	var (
		db             *gorm.DB
		eventBus       *events.EventBus
		resolver       *auth.Resolver
		companyService *company.Service
		roleService    *role.Service
		userService    *user.Service
		inviteService  *invite.Service
		ctx            context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&identityDatamodel.Account{},
			&companyDatamodel.Company{},
			&roleDatamodel.Role{},
			&userDatamodel.User{},
			&userDatamodel.CompanyLookup{},
			&inviteDatamodel.Invite{},
			&auditDatamodel.Entry{},
		)
		Expect(err).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		eventBus = events.NewEventBus(lg)

		accountRepo := authPostgres.NewRepository(db)
		companyRepo := companyPostgres.NewCompanyRepository(db)
		roleRepo := rolePostgres.NewRoleRepository(db)
		userRepo := userPostgres.NewUserRepository(db)
		inviteRepo := invitePostgres.NewInviteRepository(db)
		auditRepo := auditPostgres.NewAuditRepository(db)

		provisioner := auth.NewProvisioner(accountRepo, 4)
		resolver = auth.NewResolver(accountRepo, lg)

		auditService := audit.NewService(auditRepo, lg)
		auditService.SubscribeTo(eventBus)

		companyService = company.NewService(companyRepo, provisioner, eventBus, lg)
		roleService = role.NewService(roleRepo, eventBus, lg)
		userService = user.NewService(userRepo, roleRepo, provisioner, eventBus, lg)
		inviteService = invite.NewService(inviteRepo, roleRepo, companyRepo, provisioner, eventBus, lg)

		ctx = context.Background()
	})

	registerAcme := func() *company.Company {
		comp, err := companyService.Register(ctx, company.RegisterDTO{
			CompanyName:   "Acme",
			Industry:      "Analytics",
			CompanySize:   "11-50",
			AdminFullName: "Alice Admin",
			AdminEmail:    "a@acme.com",
			Password:      "admin-password-1",
		})
		Expect(err).NotTo(HaveOccurred())
		return comp
	}

	It("should register a company with three roles and one admin", func() {
		comp := registerAcme()

		roles, err := roleService.ListByCompany(ctx, comp.ID)
		Expect(err).NotTo(HaveOccurred())
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		Expect(names).To(ConsistOf("Admin", "Analyst", "Viewer"))

		members, err := userService.ListByCompany(ctx, comp.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(1))
		Expect(members[0].RoleName).To(Equal("Admin"))
		Expect(members[0].Permissions).To(ConsistOf(auth.AllPermissions()))

		profile, err := resolver.Resolve(ctx, members[0].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(profile).NotTo(BeNil())
		Expect(profile.CompanyID).To(Equal(comp.ID))
		Expect(profile.Can(auth.PermManageUsers)).To(BeTrue())
		Expect(profile.IsPlatformOperator).To(BeFalse())
	})

	It("should walk an invite from creation to a second member", func() {
		comp := registerAcme()
		admin, err := resolverProfile(ctx, resolver, userService, comp.ID)
		Expect(err).NotTo(HaveOccurred())

		inv, err := inviteService.Create(ctx, comp.ID, invite.CreateInviteDTO{
			Email:    "b@acme.com",
			FullName: "Bob Viewer",
			RoleName: "Viewer",
		}, admin)
		Expect(err).NotTo(HaveOccurred())

		pending, err := inviteService.List(ctx, comp.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(1))

		accepted, err := inviteService.Accept(ctx, comp.ID, inv.ID, invite.AcceptInviteDTO{Password: "viewer-password-1"})
		Expect(err).NotTo(HaveOccurred())

		members, err := userService.ListByCompany(ctx, comp.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(2))

		pending, err = inviteService.List(ctx, comp.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())

		bob, err := resolver.Resolve(ctx, *accepted.AcceptedByUserID)
		Expect(err).NotTo(HaveOccurred())
		Expect(bob.Permissions).To(ConsistOf(auth.PermViewDashboard))
		Expect(bob.Can(auth.PermManageUsers)).To(BeFalse())

		_, err = inviteService.Accept(ctx, comp.ID, inv.ID, invite.AcceptInviteDTO{Password: "viewer-password-1"})
		Expect(err).To(MatchError(internal.ErrInviteAccepted))
		members, err = userService.ListByCompany(ctx, comp.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(2))
	})

	It("should refuse a second Admin role and leave the role set unchanged", func() {
		comp := registerAcme()
		admin, err := resolverProfile(ctx, resolver, userService, comp.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = roleService.Create(ctx, comp.ID, role.CreateRoleDTO{
			Name:        "admin",
			Permissions: []string{auth.PermViewDashboard},
		}, admin)
		Expect(internal.IsConflict(err)).To(BeTrue())

		roles, listErr := roleService.ListByCompany(ctx, comp.ID)
		Expect(listErr).NotTo(HaveOccurred())
		Expect(roles).To(HaveLen(3))
	})

	It("should leave no resolvable profile after removing a member", func() {
		comp := registerAcme()
		admin, err := resolverProfile(ctx, resolver, userService, comp.ID)
		Expect(err).NotTo(HaveOccurred())

		added, err := userService.Add(ctx, comp.ID, user.AddUserDTO{
			Email:    "c@acme.com",
			FullName: "Cara Analyst",
			RoleName: "Analyst",
			Password: "analyst-password-1",
		}, admin)
		Expect(err).NotTo(HaveOccurred())

		Expect(userService.Remove(ctx, comp.ID, added.ID, admin)).To(Succeed())

		gone, err := resolver.Resolve(ctx, added.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(gone).To(BeNil())

		// The identity account outlives the membership.
		var accounts int64
		Expect(db.Model(&identityDatamodel.Account{}).Where("email = ?", "c@acme.com").Count(&accounts).Error).To(Succeed())
		Expect(accounts).To(Equal(int64(1)))
	})
})

// resolverProfile resolves the company's sole admin into an access profile.
func resolverProfile(ctx context.Context, resolver *auth.Resolver, userService *user.Service, companyID string) (*auth.AccessProfile, error) {
	members, err := userService.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(ctx, members[0].ID)
}
