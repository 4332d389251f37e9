package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/company"
	companyPostgres "github.com/cloudmorphix/console/internal/company/postgres"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/role"
)

func TestCompanyPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Postgres Suite")
}

func newRegistration(companyID, email string) *company.Registration {
	now := time.Now()
	adminID := companyID + "-admin"
	return &company.Registration{
		Account: &identityDatamodel.Account{
			ID:           adminID,
			Email:        email,
			PasswordHash: "bcrypt-hash",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		Company: &companyDatamodel.Company{
			ID:              companyID,
			Name:            "Acme Analytics",
			RegisteredEmail: email,
			PlanType:        companyDatamodel.PlanTrial,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		Roles: role.Defaults(companyID),
		Admin: &userDatamodel.User{
			ID:        adminID,
			CompanyID: companyID,
			FullName:  "Alice Admin",
			Email:     email,
			RoleName:  role.AdminRoleName,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Lookup: &userDatamodel.CompanyLookup{
			UserID:    adminID,
			CompanyID: companyID,
			CreatedAt: now,
		},
	}
}

var _ = Describe("Company PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo company.Repository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&identityDatamodel.Account{},
			&companyDatamodel.Company{},
			&roleDatamodel.Role{},
			&userDatamodel.User{},
			&userDatamodel.CompanyLookup{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = companyPostgres.NewCompanyRepository(db)
	})

	Describe("CreateWithAdmin", func() {
		It("should write the account, company, roles, admin and lookup together", func() {
			err := repo.CreateWithAdmin(newRegistration("company-1", "alice@acme.test"))
			Expect(err).NotTo(HaveOccurred())

			var accounts, roles, users, lookups int64
			Expect(db.Model(&identityDatamodel.Account{}).Count(&accounts).Error).To(Succeed())
			Expect(db.Model(&roleDatamodel.Role{}).Count(&roles).Error).To(Succeed())
			Expect(db.Model(&userDatamodel.User{}).Count(&users).Error).To(Succeed())
			Expect(db.Model(&userDatamodel.CompanyLookup{}).Count(&lookups).Error).To(Succeed())
			Expect(accounts).To(Equal(int64(1)))
			Expect(roles).To(Equal(int64(3)))
			Expect(users).To(Equal(int64(1)))
			Expect(lookups).To(Equal(int64(1)))

			stored, err := repo.GetByID("company-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("Acme Analytics"))
			Expect(stored.IsPlatformOperator).To(BeFalse())
		})

		It("should round-trip role permissions", func() {
			err := repo.CreateWithAdmin(newRegistration("company-1", "alice@acme.test"))
			Expect(err).NotTo(HaveOccurred())

			var admin roleDatamodel.Role
			err = db.Where("company_id = ? AND name = ?", "company-1", role.AdminRoleName).First(&admin).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(admin.Permissions).To(ConsistOf("manage_users", "manage_roles", "view_dashboard"))
		})

		It("should reject a taken email regardless of case and leave nothing behind", func() {
			err := repo.CreateWithAdmin(newRegistration("company-1", "alice@acme.test"))
			Expect(err).NotTo(HaveOccurred())

			err = repo.CreateWithAdmin(newRegistration("company-2", "ALICE@ACME.TEST"))
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))

			var companies int64
			Expect(db.Model(&companyDatamodel.Company{}).Count(&companies).Error).To(Succeed())
			Expect(companies).To(Equal(int64(1)))

			stored, err := repo.GetByID("company-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})
	})

	Describe("GetByID", func() {
		It("should return nil for an unknown company", func() {
			stored, err := repo.GetByID("ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})
	})

	Describe("Update", func() {
		It("should persist plan and dashboard changes", func() {
			Expect(repo.CreateWithAdmin(newRegistration("company-1", "alice@acme.test"))).To(Succeed())

			stored, err := repo.GetByID("company-1")
			Expect(err).NotTo(HaveOccurred())

			url := "https://dash.example/company-1"
			stored.PlanType = companyDatamodel.PlanEnterprise
			stored.DashboardURL = &url
			Expect(repo.Update(stored)).To(Succeed())

			reread, err := repo.GetByID("company-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(reread.PlanType).To(Equal(companyDatamodel.PlanEnterprise))
			Expect(reread.DashboardURL).NotTo(BeNil())
			Expect(*reread.DashboardURL).To(Equal(url))
		})
	})

	Describe("List", func() {
		It("should page newest first", func() {
			for i, id := range []string{"company-1", "company-2", "company-3"} {
				reg := newRegistration(id, id+"@acme.test")
				reg.Company.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
				Expect(repo.CreateWithAdmin(reg)).To(Succeed())
			}

			companies, err := repo.List(2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(2))
			Expect(companies[0].ID).To(Equal("company-3"))
			Expect(companies[1].ID).To(Equal("company-2"))
		})
	})
})
